package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/stefdev49/vs-zx-sub002/internal/server"
	"github.com/stefdev49/vs-zx-sub002/internal/token"
)

// settingsSection is the client settings namespace, for example
//
//	{"zxbasic": {"dialect": "128k", "strict": true, "maxProblems": 50}}
const settingsSection = "zxbasic"

// DidChangeConfiguration handles workspace configuration changes from the
// client. Every open document is analyzed again with the new settings.
func DidChangeConfiguration(context *glsp.Context, params *protocol.DidChangeConfigurationParams) error {
	srv := serverInstance
	if srv == nil {
		log.Warning("server instance not available in DidChangeConfiguration")
		return nil
	}

	if !applySettings(srv, params.Settings) {
		return nil
	}

	maxProblems := srv.Config().MaxProblems
	for _, doc := range srv.Reanalyze() {
		PublishDiagnostics(context, doc, maxProblems)
	}
	return nil
}

// applySettings updates the configuration from a settings object, either
// wrapped in the settings section or bare. Unknown keys and values of the
// wrong type are ignored. It reports whether anything was recognized.
func applySettings(srv *server.Server, settings any) bool {
	all, ok := settings.(map[string]any)
	if !ok {
		return false
	}
	if section, ok := all[settingsSection].(map[string]any); ok {
		all = section
	}

	changed := false
	srv.UpdateConfig(func(cfg *server.Config) {
		if v, ok := all["maxProblems"].(float64); ok && v >= 0 {
			cfg.MaxProblems = int(v)
			changed = true
		}
		if v, ok := all["trace"].(string); ok {
			cfg.Trace = v
			changed = true
		}
		if v, ok := all["dialect"].(string); ok {
			if d, ok := token.ParseDialect(v); ok {
				cfg.Dialect = d
				changed = true
			} else {
				log.Warningf("unknown dialect %q", v)
			}
		}
		if v, ok := all["strict"].(bool); ok {
			cfg.Strict = v
			changed = true
		}
		if v, ok := all["renumberIncrement"].(float64); ok && v >= 1 {
			cfg.RenumberIncrement = int(v)
			changed = true
		}
		if v, ok := all["maxLineLength"].(float64); ok && v >= 0 {
			cfg.MaxLineLength = int(v)
			changed = true
		}
	})

	if changed {
		cfg := srv.Config()
		log.Infof("configuration: dialect=%s strict=%t maxProblems=%d renumberIncrement=%d maxLineLength=%d",
			cfg.Dialect, cfg.Strict, cfg.MaxProblems, cfg.RenumberIncrement, cfg.MaxLineLength)
	}
	return changed
}

// DidChangeWorkspaceFolders handles changes to workspace folders.
func DidChangeWorkspaceFolders(context *glsp.Context, params *protocol.DidChangeWorkspaceFoldersParams) error {
	srv := serverInstance
	if srv == nil {
		log.Warning("server instance not available in DidChangeWorkspaceFolders")
		return nil
	}

	removed := map[string]bool{}
	for _, f := range params.Event.Removed {
		removed[f.URI] = true
		log.Infof("workspace folder removed: %s (%s)", f.Name, f.URI)
	}

	var folders []string
	for _, f := range srv.GetWorkspaceFolders() {
		if !removed[f] {
			folders = append(folders, f)
		}
	}
	for _, f := range params.Event.Added {
		folders = append(folders, f.URI)
		log.Infof("workspace folder added: %s (%s)", f.Name, f.URI)
	}
	srv.SetWorkspaceFolders(folders)

	return nil
}
