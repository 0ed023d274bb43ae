package main

import (
	"fmt"
	"log"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/vidterm/vidterm/internal/discover"
	"github.com/vidterm/vidterm/internal/ffmpeg"
	"github.com/vidterm/vidterm/internal/menu"
)

var rootCmd = &cobra.Command{
	Use:   "vidterm",
	Short: "An interactive terminal tool for resizing, splitting and cropping videos",
	Long: `vidterm is an interactive, menu-driven tool for preparing videos for
social media. It discovers the video files in a directory and resizes,
splits, or crops them by driving FFmpeg.

Everything happens through the menu; there are no processing flags.

Examples:
  # Browse videos in the current directory
  vidterm

  # Browse videos somewhere else
  vidterm --dir ~/clips`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		dir, _ := cmd.Flags().GetString("dir")

		if dir == "" {
			cwd, err := os.Getwd()
			if err != nil {
				return errors.Wrap(err, "determining working directory")
			}
			dir = cwd
		}

		// The whole tool shells out to FFmpeg; refuse to start without it.
		if err := ffmpeg.CheckInstalled(); err != nil {
			return err
		}

		return menu.Run(menu.Options{
			Dir:    dir,
			Engine: ffmpeg.NewProcessor(verbose),
			List:   discover.ListVideos,
			Out:    os.Stdout,
		})
	},
}

func init() {
	rootCmd.Flags().BoolP("verbose", "v", false, "Log FFmpeg command lines to stderr")
	rootCmd.Flags().String("dir", "", "Directory to browse for videos (defaults to the current directory)")
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
