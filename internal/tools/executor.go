package tools

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// AccessDenied is the result text for calls whose path escapes the
// working root. It is fed back to the model verbatim.
const AccessDenied = "Access denied: path outside current directory"

// Execute performs exactly one filesystem operation and reports the
// outcome. It never returns an error: every failure, including a
// containment violation, is encoded in the ToolResult so the loop can
// feed it back to the model.
//
// The target path is resolved against workingRoot and must stay inside
// it, with one deliberate exception: list_dir may resolve outside the
// root. The listing is still performed only on the resolved path.
func Execute(call ToolCall, workingRoot string) ToolResult {
	path := call.Path
	if path == "" {
		path = "."
	}

	target, contained := resolve(workingRoot, path)
	if !contained && call.Action != ActionListDir {
		return failure(call.Action, path, AccessDenied)
	}

	switch call.Action {
	case ActionReadFile:
		return readFile(path, target)
	case ActionCreateFile:
		return createFile(path, target, call.Content)
	case ActionCreateFolder:
		if err := os.MkdirAll(target, 0755); err != nil {
			return failure(ActionCreateFolder, path, err.Error())
		}
		return success(ActionCreateFolder, path, "Folder created")
	case ActionDelete:
		return deletePath(path, target)
	case ActionListDir:
		return listDir(path, target)
	}
	return failure(call.Action, path, fmt.Sprintf("Unknown action: %s", call.Action))
}

// resolve joins path onto the canonicalized root and reports whether the
// result stays inside it. An absolute path is taken as-is rather than
// joined, so the model cannot smuggle one past the boundary. Targets
// that do not exist yet are contained lexically; existing targets are
// canonicalized first so a symlink cannot escape.
func resolve(workingRoot, path string) (string, bool) {
	root, err := filepath.Abs(workingRoot)
	if err != nil {
		return path, false
	}
	if r, err := filepath.EvalSymlinks(root); err == nil {
		root = r
	}

	var target string
	if filepath.IsAbs(path) {
		target = filepath.Clean(path)
	} else {
		target = filepath.Join(root, path)
	}
	if t, err := filepath.EvalSymlinks(target); err == nil {
		target = t
	}

	rel, err := filepath.Rel(root, target)
	if err != nil {
		return target, false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return target, false
	}
	return target, true
}

func readFile(path, target string) ToolResult {
	data, err := os.ReadFile(target)
	if err != nil {
		return failure(ActionReadFile, path, err.Error())
	}
	if len(data) > 0 {
		if mtype := mimetype.Detect(data); !isTextMIME(mtype) {
			return failure(ActionReadFile, path, fmt.Sprintf("cannot read binary file (%s)", mtype.String()))
		}
	}
	return success(ActionReadFile, path, string(data))
}

// isTextMIME walks the detected type's ancestry; every textual format
// mimetype knows descends from text/plain.
func isTextMIME(m *mimetype.MIME) bool {
	for ; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}

func createFile(path, target, content string) ToolResult {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return failure(ActionCreateFile, path, err.Error())
	}
	if err := os.WriteFile(target, []byte(content), 0644); err != nil {
		return failure(ActionCreateFile, path, err.Error())
	}
	return success(ActionCreateFile, path, fmt.Sprintf("Created file with %d bytes", len(content)))
}

func deletePath(path, target string) ToolResult {
	info, err := os.Stat(target)
	if err != nil {
		return failure(ActionDelete, path, err.Error())
	}
	if info.IsDir() {
		err = os.RemoveAll(target)
	} else {
		err = os.Remove(target)
	}
	if err != nil {
		return failure(ActionDelete, path, err.Error())
	}
	return success(ActionDelete, path, "Deleted")
}

func listDir(path, target string) ToolResult {
	entries, err := os.ReadDir(target)
	if err != nil {
		return failure(ActionListDir, path, err.Error())
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			name += "/"
		}
		names = append(names, name)
	}
	return success(ActionListDir, path, strings.Join(names, "\n"))
}

func success(action, path, result string) ToolResult {
	return ToolResult{Action: action, Path: path, Success: true, Result: result}
}

func failure(action, path, result string) ToolResult {
	return ToolResult{Action: action, Path: path, Success: false, Result: result}
}
