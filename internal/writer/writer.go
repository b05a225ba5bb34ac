// Package writer persists a classified bundle to the sidecar and, when
// enabled, to each file's extended attribute, following the mode-specific
// routing rules for when Append and OverwriteAll trigger.
package writer

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/dano-checksum/dano/internal/climsg"
	"github.com/dano-checksum/dano/internal/config"
	"github.com/dano-checksum/dano/internal/ingest"
	"github.com/dano-checksum/dano/internal/record"
	"github.com/dano-checksum/dano/internal/sidecar"
)

// Bundle is the Classifier's output, ready for the Writer to route.
type Bundle struct {
	NewFiles          []record.FileInfo
	ModifiedFilenames []record.FileInfo
}

// Write routes bundle through the mode-specific rules in §4.6: Write mode
// always appends new files and conditionally overwrites on rename; Test mode
// gates both behind write_new/overwrite_old; Dump mode always writes to the
// sidecar only, skipping the xattr mirror.
func Write(cfg *config.Config, bundle Bundle) error {
	switch mode := cfg.ExecMode.(type) {
	case config.WriteMode:
		return writeModeRoute(cfg, bundle, mode)
	case config.TestMode:
		return testModeRoute(cfg, bundle, mode)
	case config.DumpMode:
		return dumpModeRoute(cfg, bundle)
	default:
		return nil
	}
}

func writeModeRoute(cfg *config.Config, bundle Bundle, mode config.WriteMode) error {
	if err := appendAll(cfg, bundle.NewFiles, true); err != nil {
		return err
	}
	if len(bundle.ModifiedFilenames) > 0 && mode.Overwrite {
		return overwriteAll(cfg, bundle.ModifiedFilenames)
	}
	return nil
}

func testModeRoute(cfg *config.Config, bundle Bundle, mode config.TestMode) error {
	if mode.WriteNew {
		if err := appendAll(cfg, bundle.NewFiles, true); err != nil {
			return err
		}
	} else {
		for _, info := range bundle.NewFiles {
			climsg.Warning("not writing, --write-new not specified: %s", info.Path)
		}
	}

	if mode.WriteNew && mode.OverwriteOld && len(bundle.ModifiedFilenames) > 0 {
		return overwriteAll(cfg, bundle.ModifiedFilenames)
	}
	if len(bundle.ModifiedFilenames) > 0 && !(mode.WriteNew && mode.OverwriteOld) {
		for _, info := range bundle.ModifiedFilenames {
			climsg.Warning("not writing, flag not specified: %s", info.Path)
		}
	}
	return nil
}

func dumpModeRoute(cfg *config.Config, bundle Bundle) error {
	all := append(append([]record.FileInfo{}, bundle.NewFiles...), bundle.ModifiedFilenames...)
	return appendAll(cfg, all, false)
}

// appendAll appends infos to the sidecar (or prints them, under dry-run),
// then mirrors to xattr unless mirror is false (Dump mode never mirrors).
func appendAll(cfg *config.Config, infos []record.FileInfo, mirror bool) error {
	if len(infos) == 0 {
		return nil
	}
	if cfg.DryRun {
		for _, info := range infos {
			serialized, err := record.Serialize(info)
			if err != nil {
				return errors.Wrap(err, "serializing dry-run record")
			}
			fmt.Println(serialized)
		}
		return nil
	}

	if err := sidecar.Append(cfg.OutputFile, cfg.PWD, infos); err != nil {
		return errors.Wrap(err, "appending to sidecar")
	}

	if mirror && cfg.Xattr {
		for _, info := range infos {
			if err := ingest.StoreXattr(info.Path, info); err != nil {
				return errors.Wrapf(err, "mirroring xattr for %s", info.Path)
			}
		}
	}
	return nil
}

// overwriteAll appends infos (the newly classified renames) as an ordinary
// Append would, then, unless xattr writes are in effect, re-reads the whole
// sidecar, deduplicates by digest, and atomically replaces it. Per §13(c),
// when xattr is enabled this whole step collapses to the plain append: each
// path's attribute already carries its latest record, so sidecar-level
// dedup would be redundant.
func overwriteAll(cfg *config.Config, infos []record.FileInfo) error {
	if err := appendAll(cfg, infos, true); err != nil {
		return err
	}
	if cfg.Xattr || cfg.DryRun {
		return nil
	}

	existing, err := sidecar.ReadAll(cfg.OutputFile)
	if err != nil {
		return errors.Wrap(err, "reading sidecar for overwrite")
	}
	deduped := sidecar.DeduplicateByDigest(existing)
	return errors.Wrap(sidecar.OverwriteAll(cfg.OutputFile, cfg.PWD, deduped), "overwriting sidecar")
}
