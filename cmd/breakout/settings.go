package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/settings"
)

var (
	flagBGM  float64
	flagSFX  float64
	flagUp   string
	flagDown string
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change volumes",
	Long: `Show the music and effect volumes, or change them.

Volumes are between 0 and 1 and are clamped into that range. --up and
--down step one volume by 0.1.

Examples:
  breakout settings
  breakout settings --sfx 0.4
  breakout settings --up bgm
  breakout settings --down sfx`,
	Args: cobra.NoArgs,
	RunE: runSettings,
}

func init() {
	settingsCmd.Flags().Float64Var(&flagBGM, "bgm", 0, "Set the music volume (0-1)")
	settingsCmd.Flags().Float64Var(&flagSFX, "sfx", 0, "Set the effect volume (0-1)")
	settingsCmd.Flags().StringVar(&flagUp, "up", "", "Step a volume up: bgm or sfx")
	settingsCmd.Flags().StringVar(&flagDown, "down", "", "Step a volume down: bgm or sfx")
}

// applyVolumeFlags returns a with the volume flags applied. A nil bgm or
// sfx leaves that volume alone.
func applyVolumeFlags(a settings.AudioSettings, bgm, sfx *float64, up, down string) (settings.AudioSettings, error) {
	if bgm != nil {
		a.BGM = settings.ClampVolume(*bgm)
	}
	if sfx != nil {
		a.SFX = settings.ClampVolume(*sfx)
	}
	for _, s := range []struct {
		target string
		step   func(float64) float64
	}{
		{up, settings.StepUp},
		{down, settings.StepDown},
	} {
		switch s.target {
		case "":
		case "bgm":
			a.BGM = s.step(a.BGM)
		case "sfx":
			a.SFX = s.step(a.SFX)
		default:
			return a, fmt.Errorf("unknown volume %q (want bgm or sfx)", s.target)
		}
	}
	return a, nil
}

func runSettings(cmd *cobra.Command, _ []string) error {
	logger, closer, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closer.Close()

	prefs := settings.NewStore(settings.OpenGdata(logger), logger)
	current := prefs.LoadAudio()

	var bgm, sfx *float64
	if cmd.Flags().Changed("bgm") {
		bgm = &flagBGM
	}
	if cmd.Flags().Changed("sfx") {
		sfx = &flagSFX
	}
	next, err := applyVolumeFlags(current, bgm, sfx, flagUp, flagDown)
	if err != nil {
		return err
	}
	if next != current {
		prefs.SaveAudio(next)
		logger.Debug("volumes saved", "audio", next.String())
	}

	fmt.Printf("Music:   %3d%%\n", settings.Percent(next.BGM))
	fmt.Printf("Effects: %3d%%\n", settings.Percent(next.SFX))
	return nil
}
