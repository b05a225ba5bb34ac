// Command dano is a media-file checksum custodian: it hashes the decoded or
// copied internal streams of media containers via an external transcoder,
// records digests in a sidecar file and/or per-file extended attributes, and
// later verifies current files against those records.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dano-checksum/dano/internal/climsg"
	"github.com/dano-checksum/dano/internal/config"
	"github.com/dano-checksum/dano/internal/dispatch"
)

func rootMain(command *cobra.Command, arguments []string) {
	config.LoadEnv(mustGetwd())

	var defaults config.GlobalDefaults
	if home, err := os.UserHomeDir(); err == nil {
		defaults, _ = config.LoadGlobalDefaults(home + "/.dano.yaml")
	}

	opts := config.Options{
		Write:          rootConfiguration.write,
		Test:           rootConfiguration.test,
		Print:          rootConfiguration.print,
		Dump:           rootConfiguration.dump,
		ImportFlac:     rootConfiguration.importFlac,
		Clean:          rootConfiguration.clean,
		Rewrite:        rootConfiguration.rewrite,
		WriteNew:       rootConfiguration.writeNew,
		OverwriteOld:   rootConfiguration.overwrite,
		Silent:         rootConfiguration.silent,
		Decode:         rootConfiguration.decode,
		Xattr:          rootConfiguration.xattr,
		DryRun:         rootConfiguration.dryRun,
		DisableFilter:  rootConfiguration.disableFilter,
		CanonicalPaths: rootConfiguration.canonicalPaths,
		NumThreads:     rootConfiguration.threads,
		Only:           rootConfiguration.only,
		HashAlgoName:   rootConfiguration.hashAlgo,
		OutputFile:     rootConfiguration.outputFile,
		HashFile:       rootConfiguration.hashFile,
		BitsPerSecond:  rootConfiguration.bitsPerSecond,
		InputFiles:     arguments,
	}

	if len(opts.InputFiles) == 0 {
		if stdinPaths := readStdinPaths(); len(stdinPaths) > 0 {
			opts.StdinPaths = stdinPaths
		}
	}

	opts = config.ApplyGlobalDefaults(opts, defaults)

	cfg, err := config.Resolve(opts)
	if err != nil {
		climsg.Fatal("%v", err)
	}

	exitCode, err := dispatch.Run(cfg)
	if err != nil {
		climsg.Error("%v", err)
		if exitCode == 0 {
			exitCode = 1
		}
	}
	os.Exit(exitCode)
}

func mustGetwd() string {
	pwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return pwd
}

func readStdinPaths() []string {
	info, err := os.Stdin.Stat()
	if err != nil || (info.Mode()&os.ModeCharDevice) != 0 {
		return nil
	}
	buf := make([]byte, 0, 64*1024)
	chunk := make([]byte, 64*1024)
	for {
		n, err := os.Stdin.Read(chunk)
		buf = append(buf, chunk[:n]...)
		if err != nil {
			break
		}
	}
	return config.SplitStdin(string(buf))
}

var rootCommand = &cobra.Command{
	Use:   "dano",
	Short: "dano computes and verifies media checksums over decoded or copied streams",
	Run:   rootMain,
}

var rootConfiguration struct {
	write          bool
	test           bool
	print          bool
	dump           bool
	importFlac     bool
	clean          bool
	rewrite        bool
	writeNew       bool
	overwrite      bool
	silent         bool
	decode         bool
	xattr          bool
	dryRun         bool
	disableFilter  bool
	canonicalPaths bool
	threads        int
	only           string
	hashAlgo       string
	outputFile     string
	hashFile       string
	bitsPerSecond  int
}

func init() {
	flags := rootCommand.Flags()

	flags.BoolVar(&rootConfiguration.write, "write", false, "Hash new files and write records")
	flags.BoolVar(&rootConfiguration.test, "test", false, "Verify files against recorded state")
	flags.BoolVar(&rootConfiguration.test, "compare", false, "Alias for --test")
	flags.BoolVar(&rootConfiguration.print, "print", false, "Print the canonical record view")
	flags.BoolVar(&rootConfiguration.dump, "dump", false, "Re-serialize the canonical view to the sidecar")
	flags.BoolVar(&rootConfiguration.importFlac, "import-flac", false, "Seed records from FLAC stream MD5s")
	flags.BoolVar(&rootConfiguration.clean, "clean", false, "Remove the dano extended attribute from inputs")

	flags.BoolVar(&rootConfiguration.rewrite, "rewrite", false, "Force re-hash of existing records (requires --write)")
	flags.BoolVar(&rootConfiguration.writeNew, "write-new", false, "Append records for newly seen paths (requires --test)")
	flags.BoolVar(&rootConfiguration.overwrite, "overwrite", false, "Re-materialize the sidecar on renamed content")
	flags.StringVar(&rootConfiguration.only, "only", "", "Restrict hashing to \"audio\" or \"video\" streams")

	flags.StringVar(&rootConfiguration.outputFile, "output-file", "", "Sidecar path to write (default dano_hashes.txt)")
	flags.StringVar(&rootConfiguration.hashFile, "hash-file", "", "Sidecar path to read records from")
	flags.IntVar(&rootConfiguration.threads, "threads", 0, "Worker pool size (default: logical CPU count)")
	flags.BoolVar(&rootConfiguration.silent, "silent", false, "Suppress OK lines")
	flags.BoolVar(&rootConfiguration.disableFilter, "disable-filter", false, "Skip the recognized-extension filter")
	flags.BoolVar(&rootConfiguration.canonicalPaths, "canonical-paths", false, "Resolve input paths to absolute form")
	flags.BoolVar(&rootConfiguration.xattr, "xattr", false, "Mirror records to each file's extended attribute")
	flags.StringVar(&rootConfiguration.hashAlgo, "hash-algo", "", "Hash algorithm (default murmur3)")
	flags.BoolVar(&rootConfiguration.decode, "decode", false, "Decode streams before hashing instead of stream-copying")
	flags.IntVar(&rootConfiguration.bitsPerSecond, "bits-per-second", 0, "PCM reinterpretation bit depth during decode")
	flags.BoolVar(&rootConfiguration.dryRun, "dry-run", false, "Print would-be writes instead of mutating state")

	cobra.EnableCommandSorting = false
}

func main() {
	if err := rootCommand.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
