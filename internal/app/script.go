package app

import (
	"context"
)

// RunScript runs a Lua automation file against the active document
// without a screen. Soft-tab handling is suppressed while it runs.
func (app *Application) RunScript(ctx context.Context, path string) error {
	doc := app.documents.Active()
	if doc == nil {
		return ErrNoActiveDocument
	}
	app.log.Debug("running script %s on %s", path, doc.Name)
	if err := doc.Runner.RunFile(ctx, path); err != nil {
		return &OperationError{Op: "script", Target: path, Err: err}
	}
	return nil
}

// RunScriptString runs Lua source against the active document.
func (app *Application) RunScriptString(ctx context.Context, code string) error {
	doc := app.documents.Active()
	if doc == nil {
		return ErrNoActiveDocument
	}
	if err := doc.Runner.Run(ctx, code); err != nil {
		return &OperationError{Op: "script", Err: err}
	}
	return nil
}
