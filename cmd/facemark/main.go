package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/mhorvath/facemark"
	"github.com/mhorvath/facemark/utils"
	"golang.org/x/term"
)

const helpBanner = `
┌─┐┌─┐┌─┐┌─┐┌┬┐┌─┐┬─┐┬┌─
├┤ ├─┤│  ├┤ │││├─┤├┬┘├┴┐
└  ┴ ┴└─┘└─┘┴ ┴┴ ┴┴└─┴ ┴

Face detection and annotation tool.
    Version: %s

Usage: facemark <directory_path> [--save <save_directory>]

`

// Version indicates the current build version.
var Version string

func main() {
	log.SetFlags(0)

	flags := flag.NewFlagSet("facemark", flag.ExitOnError)
	var (
		saveDir = flags.String("save", "", "Directory to save the annotated copies into (display mode when empty)")
		cascade = flags.String("cc", "data/facefinder", "Face cascade classifier file")
	)
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, helpBanner, Version)
		flags.PrintDefaults()
	}

	utils.NoColor = !term.IsTerminal(int(os.Stderr.Fd()))

	args := os.Args[1:]
	if len(args) == 0 {
		flags.Usage()
		os.Exit(1)
	}
	if args[0] == "-h" || args[0] == "-help" || args[0] == "--help" {
		flags.Usage()
		return
	}

	dir := args[0]
	if len(dir) > 0 && dir[0] == '-' {
		log.Fatalf(utils.DecorateText("The directory path must be the first argument.", utils.ErrorMessage))
	}
	if err := flags.Parse(args[1:]); err != nil {
		os.Exit(1)
	}

	fi, err := os.Stat(dir)
	if err != nil || !fi.IsDir() {
		log.Fatalf(utils.DecorateText("The provided path is not a valid directory.", utils.ErrorMessage))
	}

	// Load the face classifier once, before any image is touched.
	classifier, err := facemark.NewCascadeClassifier(*cascade)
	if err != nil {
		log.Fatalf(
			utils.DecorateText("Error loading the face cascade from %s: %v", utils.ErrorMessage),
			*cascade, err,
		)
	}

	proc := facemark.NewProcessor(classifier)
	proc.Spinner = utils.NewSpinner(
		utils.DecorateText("Detecting faces...", utils.StatusMessage),
		time.Millisecond*80, true,
	)

	proc.Execute(&facemark.Ops{
		Dir:        dir,
		SaveDir:    *saveDir,
		ShouldSave: len(*saveDir) > 0,
	})
}
