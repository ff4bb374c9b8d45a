package output

import "fmt"

// Message keys for the push report.
const (
	MsgWaitingText         = "push.waiting_text"
	MsgSuccessConfirmation = "push.success_confirmation"
	MsgSuccessInfo         = "push.success_info"
	MsgPushedWithErrors    = "push.pushed_with_errors"
	MsgPushWithErrorsInfo  = "push.push_with_errors_info"
	MsgBuildComplete       = "build.complete"
	MsgRegistered          = "register.complete"
)

var messages = map[string]string{
	MsgWaitingText:         "Pushing your code to the management service...",
	MsgSuccessConfirmation: "%s was pushed as a draft at %s.",
	MsgSuccessInfo:         "Visit %s to review your draft version.",
	MsgPushedWithErrors:    "Draft updated at %s, but the service reported validation errors:",
	MsgPushWithErrorsInfo:  "Fix the errors above and push again.",
	MsgBuildComplete:       "Built %s (%d bytes).",
	MsgRegistered:          "Registered %s with the management service.",
}

// Message renders the template for key with args. Unknown keys render as the
// key itself so a missing template is visible rather than silent.
func Message(key string, args ...any) string {
	tmpl, ok := messages[key]
	if !ok {
		return key
	}
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}
