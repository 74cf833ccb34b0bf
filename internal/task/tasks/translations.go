package tasks

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ModOrganizer2/mob/internal/task"
	"github.com/ModOrganizer2/mob/internal/task/tools"
	"github.com/ModOrganizer2/mob/internal/tx"
	"github.com/ModOrganizer2/mob/internal/utility/fs"
)

// TranslationsTask's Fetch phase invokes the translation-service client's
// init/configure/pull triad; its Build phase discovers per-project
// subdirectories and compiles each language file via the translation
// compiler, per SPEC_FULL.md §4.8.
type TranslationsTask struct {
	Client           *tx.Client
	Root             string
	Resources        []tx.Resource
	Langs            []string
	ToolkitTranslDir string // toolkit-provided qt_<lang>.qm / qtbase_<lang>.qm
	OutputDir        string
}

func (t *TranslationsTask) Name() string { return "translations" }

func (t *TranslationsTask) Enabled(tc *task.Context) bool { return true }

func (t *TranslationsTask) DoClean(tc *task.Context) error { return nil }

func (t *TranslationsTask) DoFetch(tc *task.Context) error {
	tt := &tools.TransifexTool{Client: t.Client, Operation: tools.TransifexInit, Root: t.Root}
	if err := tt.Run(toolContext(tc)); err != nil {
		return err
	}

	for _, r := range t.Resources {
		ct := &tools.TransifexTool{Client: t.Client, Operation: tools.TransifexConfigure, Root: t.Root, Resource: r}
		if err := ct.Run(toolContext(tc)); err != nil {
			return err
		}
		for _, lang := range t.Langs {
			dest := filepath.Join(t.Root, r.Slug, r.Slug+"_"+lang+".ts")
			pt := &tools.TransifexTool{Client: t.Client, Operation: tools.TransifexPull, Root: t.Root, Resource: r, Lang: lang, DestFile: dest}
			if err := pt.Run(toolContext(tc)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (t *TranslationsTask) DoBuildAndInstall(tc *task.Context) error {
	entries, err := os.ReadDir(t.Root)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		project := entry.Name()
		for _, lang := range t.Langs {
			source := filepath.Join(t.Root, project, project+"_"+lang+".ts")
			if !fs.Exists(source) {
				continue
			}
			lr := tools.NewLreleaseTool()
			lr.Project = project
			lr.Lang = lang
			lr.SourceFiles = []string{source}
			lr.OutputDir = t.OutputDir
			if err := lr.Run(toolContext(tc)); err != nil {
				return err
			}
		}
	}
	return t.copyToolkitTranslations(tc)
}

// copyToolkitTranslations copies toolkit-provided qt_<lang>.qm /
// qtbase_<lang>.qm files if present, falling back to the language's short
// code (e.g. "zh" for "zh_CN") per SPEC_FULL.md §4.8.
func (t *TranslationsTask) copyToolkitTranslations(tc *task.Context) error {
	if t.ToolkitTranslDir == "" {
		return nil
	}
	for _, lang := range t.Langs {
		for _, prefix := range []string{"qt", "qtbase"} {
			candidates := []string{lang}
			if idx := strings.Index(lang, "_"); idx > 0 {
				candidates = append(candidates, lang[:idx])
			}
			for _, code := range candidates {
				src := filepath.Join(t.ToolkitTranslDir, prefix+"_"+code+".qm")
				if !fs.Exists(src) {
					continue
				}
				dest := filepath.Join(t.OutputDir, prefix+"_"+lang+".qm")
				if tc.DryRun {
					tc.Log.Infof("[dry-run] copy %s -> %s", src, dest)
					break
				}
				if err := fs.CopyFile(src, dest); err != nil {
					return err
				}
				break
			}
		}
	}
	return nil
}
