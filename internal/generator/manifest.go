package generator

import (
	"time"

	"git.home.luguber.info/inful/sitecfg/internal/config"
	"git.home.luguber.info/inful/sitecfg/internal/content"
	ferrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/manifest"
	"git.home.luguber.info/inful/sitecfg/internal/render"
	"gopkg.in/yaml.v3"
)

func (g *Generator) writeManifest(r *Report, start time.Time) error {
	m := &manifest.RunManifest{
		ID:        r.RunID,
		Timestamp: start.UTC(),
		Inputs: manifest.Inputs{
			ConfigHash:  configHash(g.cfg),
			Target:      r.Target,
			ContentRoot: g.cfg.Content.Root,
		},
		Outputs: manifest.Outputs{
			File:    g.cfg.Output.Filename,
			Format:  string(r.Format),
			Hash:    r.Digest,
			Changed: r.Changed,
		},
		Pages:    content.Fingerprints(r.Groups),
		Status:   "unchanged",
		Duration: r.Duration.Milliseconds(),
	}
	if r.Changed {
		m.Status = "written"
	}
	for _, grp := range r.Groups {
		m.Inputs.Groups = append(m.Inputs.Groups, manifest.GroupInput{
			Label:     grp.Label,
			Directory: grp.Directory,
			Pages:     len(grp.Pages),
			Missing:   grp.Missing,
		})
	}

	data, err := m.ToJSON()
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "encode run manifest").Build()
	}
	// Always rewritten: run id and timestamp change every run.
	if _, err := render.WriteFile(r.ManifestPath, data, false); err != nil {
		return err
	}
	return nil
}

// configHash digests the effective configuration so manifests from runs with
// different settings can be told apart.
func configHash(cfg *config.Config) string {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return ""
	}
	return render.Digest(data)
}
