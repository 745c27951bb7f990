package utils

import (
	"fmt"
	"os"

	"github.com/erikgeiser/promptkit/confirmation"
	"github.com/manifoldco/promptui"
)

// SelectPrompt runs the select prompt and exits if it was aborted
func SelectPrompt(prompt *promptui.Select) string {
	_, res, err := prompt.Run()
	if err != nil {
		fmt.Println("Aborting")
		os.Exit(1)
	}
	return res
}

// SelectString lets the user pick one of items
func SelectString(label string, items []string) string {
	return SelectPrompt(&promptui.Select{
		Label: label,
		Items: items,
		Size:  10,
	})
}

// Confirm asks a yes/no question. Aborting the prompt counts as "no"
func Confirm(question string, fallback bool) bool {
	value := confirmation.No
	if fallback {
		value = confirmation.Yes
	}
	ok, err := confirmation.New(question, value).RunPrompt()
	if err != nil {
		return false
	}
	return ok
}
