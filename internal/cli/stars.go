package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eggrusher04/HealthyAuraProject/internal/core/domain"
)

var glyphs = map[domain.Star]string{
	domain.StarFull:  "★",
	domain.StarHalf:  "⯪",
	domain.StarEmpty: "☆",
}

func newStarsCmd(a *app) *cobra.Command {
	var slots int
	cmd := &cobra.Command{
		Use:   "stars <average>",
		Short: "Render an average score as rating slots",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			avg, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("average must be a number: %w", err)
			}
			stars := domain.StarsFor(avg, slots)
			full, half, empty := domain.CountStars(stars)

			var b strings.Builder
			for _, s := range stars {
				b.WriteString(glyphs[s])
			}
			fmt.Fprintf(a.stdout, "%s  (%d full, %d half, %d empty)\n", b.String(), full, half, empty)
			return nil
		},
	}
	cmd.Flags().IntVar(&slots, "slots", domain.DefaultStarSlots, "number of slots")
	return cmd
}
