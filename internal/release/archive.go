package release

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ModOrganizer2/mob/internal/task/tools"
)

const product = "Mod.Organizer"

// BinExcludes, PdbExcludes, SrcExcludes are the curated exclude-glob lists
// for the three archive kinds, bit-exact with the original's constants.
var (
	BinExcludes = []string{"**/__pycache__/**", "**/*.pyc"}
	PdbExcludes = []string{"**/__pycache__/**", "**/*.pyc"}
	SrcExcludes = []string{
		"**/.git/**", "**/*.exe", "**/*.dll", "**/*.lib", "**/*.obj",
		"**/*.ts", "**/*.aps", "**/*.log", "**/*.tlog",
		"**/bin/**", "**/lib/**", "**/vsbuild*/**",
		"**/vcpkg/**", "**/build/**",
	}
)

// ArchiveName produces `{Product}-{Version}[-{suffix}][-{what}].7z`, with
// empty segments filtered and dash-joined, bit-exact with SPEC_FULL.md §6's
// "Archive naming" and the S2/S3 testable-property examples.
func ArchiveName(version, suffix, what string) string {
	segments := []string{product, version}
	if suffix != "" {
		segments = append(segments, suffix)
	}
	if what != "" {
		segments = append(segments, what)
	}
	return strings.Join(segments, "-") + ".7z"
}

// OutputDir resolves the release output directory: explicit flag, else
// "<prefix>/releases", created if absent. In dry-run the directory is
// returned without being created, and nothing is logged.
func OutputDir(explicit, prefix string, dryRun bool) (string, error) {
	dir := explicit
	if dir == "" {
		dir = filepath.Join(prefix, "releases")
	}
	if dryRun {
		return dir, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return dir, nil
}

// ArchivePlan names and excludes for one of the three archive kinds the
// release pipeline produces.
type ArchivePlan struct {
	What     string // "", "pdbs", or "src"
	BaseDir  string
	Excludes []string
}

// Plans builds the three standard archive plans (binaries, debug symbols,
// sources) rooted at installDir/metaDir, per SPEC_FULL.md §4.9.
func Plans(installDir, metaDir string) []ArchivePlan {
	return []ArchivePlan{
		{What: "", BaseDir: filepath.Join(installDir, "bin"), Excludes: BinExcludes},
		{What: "pdbs", BaseDir: filepath.Join(installDir, "pdb"), Excludes: PdbExcludes},
		{What: "src", BaseDir: metaDir, Excludes: SrcExcludes},
	}
}

// CreateArchives packs every plan into outputDir, named via ArchiveName,
// refusing to overwrite an existing archive unless force is set.
func CreateArchives(tc *tools.Context, plans []ArchivePlan, outputDir, version, suffix string, force bool) error {
	for _, plan := range plans {
		name := ArchiveName(version, suffix, plan.What)
		path := filepath.Join(outputDir, name)

		if _, err := os.Stat(path); err == nil {
			if !force {
				return fmt.Errorf("archive %s already exists; use force to overwrite", path)
			}
			if !tc.DryRun {
				if err := os.Remove(path); err != nil {
					return fmt.Errorf("failed to remove existing archive %s: %w", path, err)
				}
			}
		}

		packer := tools.NewPackerTool()
		packer.Operation = tools.PackerPackDirectory
		packer.ArchiveOut = path
		packer.BaseDir = plan.BaseDir
		packer.Excludes = plan.Excludes

		if err := packer.Run(tc); err != nil {
			return fmt.Errorf("failed to create archive %s: %w", name, err)
		}
	}
	return nil
}
