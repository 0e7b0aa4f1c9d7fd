// Package lua runs automation scripts against an editor view.
//
// Scripts drive the view through the same key path as a user. The
// globals below are installed in a sandboxed gopher-lua state (no io, os,
// debug or package libraries; dofile, loadfile and load removed):
//
//	keys("S-Right Down")      -- dispatch key specs in order
//	input("x = 1\n")          -- dispatch one key per character
//	line, col, vs = caret()   -- caret position, 0-based
//	al, ac, cl, cc = selection()
//	move(line, col [, vs])    -- place the caret
//	s = text()                -- whole buffer
//	set("editor.tabSize", 2)  -- session configuration override
//	print(...)                -- written to the log
//
// While a script runs, Runner.Running reports true. Hosts use it as the
// automation predicate so that soft-tab handling stays out of the way of
// scripted keys.
//
// Example:
//
//	r := lua.NewRunner(host, lua.WithLogger(log))
//	defer r.Close()
//	if err := r.RunFile(ctx, "macro.lua"); err != nil {
//	    return err
//	}
package lua
