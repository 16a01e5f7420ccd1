package session

import (
	"fmt"
	"strings"
)

// Instructions returns the system instruction block handed to the proposer.
// It fixes the plan grammar the extractor understands and the ordering rules
// the executor depends on.
func Instructions(root string) string {
	return strings.TrimSpace(fmt.Sprintf(`
You are a filesystem assistant organizing files within '%s'.

CORE RULES:
1. NEVER use absolute paths (like /home/... or C:/...).
2. ALWAYS use RELATIVE paths (like '.', 'subfolder', 'file.txt').
3. Keep related files together - move entire folders when appropriate.
4. INVALID MOVE: Never move a folder into itself or its own subfolder.
5. UNIQUE CALLS: Each tool call in the plan must be unique.

TOOLS:
- create_directory: Creates a directory at a relative path
- move_file: Moves a file/folder from source to destination

CRITICAL ORDERING FOR PLANS:
Creating directories before moving files is MANDATORY. Follow this sequence:
1. Create ALL top-level directories first
2. Create ALL nested directories next
3. Move files and folders ONLY after directories exist

FORMAT YOUR PLAN:
PLAN:
call tool 'create_directory' with args {'path': 'Images'}
call tool 'create_directory' with args {'path': 'Images/Screenshots'}
call tool 'move_file' with args {'source': 'image.jpg', 'destination': 'Images/image.jpg'}
`, root))
}

// initialPrompt asks for the first organization plan from the directory
// snapshot, prepending the operator's context when one was given.
func initialPrompt(root, snapshot, operatorContext string) string {
	base := fmt.Sprintf(
		"Based on the following file structure within the base directory '%s', "+
			"propose a logical organization plan. Present the plan as a sequence of "+
			"tool calls using relative paths.\n\nInitial Structure:\n%s",
		root, snapshot,
	)
	if operatorContext == "" {
		return base
	}
	return fmt.Sprintf("User Context for Organization: %q\n\n%s", operatorContext, base)
}

// revisionPrompt folds operator feedback into a request for a fresh plan.
// The prior plan is discarded wholesale; revisions never patch.
func revisionPrompt(feedback, snapshot string) string {
	return fmt.Sprintf(
		"The user wants to revise the organization plan. Their feedback is: %q.\n"+
			"Generate a *new* organization plan (as a sequence of tool calls) that "+
			"addresses this feedback.\n\nCurrent Structure:\n%s",
		feedback, snapshot,
	)
}
