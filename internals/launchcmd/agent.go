package launchcmd

import "fmt"

// JavaAgent is a jar passed to the JVM with -javaagent before the classpath
type JavaAgent struct {
	Path string
	// Options are appended after a "=" if set
	Options string
}

// ParseJavaAgent parses "path" or "path=options"
func ParseJavaAgent(s string) (JavaAgent, error) {
	if s == "" {
		return JavaAgent{}, fmt.Errorf("empty java agent")
	}
	for i := 0; i < len(s); i++ {
		if s[i] == '=' {
			if i == 0 {
				return JavaAgent{}, fmt.Errorf("java agent %q has no path", s)
			}
			return JavaAgent{Path: s[:i], Options: s[i+1:]}, nil
		}
	}
	return JavaAgent{Path: s}, nil
}

// JVMArgs returns the flag blob for this agent
func (a JavaAgent) JVMArgs() string {
	if a.Options == "" {
		return "-javaagent:" + a.Path
	}
	return "-javaagent:" + a.Path + "=" + a.Options
}

func (a JavaAgent) String() string {
	return a.JVMArgs()
}
