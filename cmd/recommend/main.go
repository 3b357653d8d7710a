// Command recommend prints daily calorie and macro targets for a biometric
// profile given on the command line.
//
//	recommend --gender male --age 25 --height 175 --weight 70 --frequency 2-3 --goal maintain
//	recommend --category athlete --body-fat 15 ... --explain
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"gymfuel/recommend-api/internal/recommend"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	profile   recommend.Profile
	gender    string
	category  string
	frequency string
	goal      string
	explain   bool
	asJSON    bool
}

func newRootCmd() *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:          "recommend",
		Short:        "Compute daily calorie and macro targets",
		Long:         "recommend computes daily energy and protein/carbohydrate/fat targets using Mifflin-St Jeor for general members and Cunningham for athletes.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			o.profile.Gender = recommend.Gender(o.gender)
			o.profile.Category = recommend.Category(o.category)
			o.profile.Frequency = recommend.Frequency(o.frequency)
			o.profile.Goal = recommend.Goal(o.goal)

			b, err := recommend.Explain(o.profile)
			if err != nil {
				return err
			}
			if o.asJSON {
				return writeJSON(cmd.OutOrStdout(), b, o.explain)
			}
			writeText(cmd.OutOrStdout(), b, o.explain)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.gender, "gender", "", "male or female")
	f.Float64Var(&o.profile.AgeYears, "age", 0, "age in years")
	f.Float64Var(&o.profile.HeightCm, "height", 0, "height in cm")
	f.Float64Var(&o.profile.WeightKg, "weight", 0, "weight in kg")
	f.StringVar(&o.category, "category", string(recommend.General), "general or athlete")
	f.Float64Var(&o.profile.BodyFatPercent, "body-fat", 0, "body fat percent (required for athletes)")
	f.StringVar(&o.frequency, "frequency", string(recommend.Freq2to3), "weekly training sessions: 0-1, 2-3, 4-5, 6+")
	f.StringVar(&o.goal, "goal", string(recommend.Maintain), "general: bulk|maintain|diet, athlete: lean_bulk|maintain|cut")
	f.BoolVar(&o.explain, "explain", false, "show intermediate values")
	f.BoolVar(&o.asJSON, "json", false, "print JSON")
	_ = cmd.MarkFlagRequired("gender")

	return cmd
}

func writeJSON(w io.Writer, b recommend.Breakdown, explain bool) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if explain {
		return enc.Encode(b)
	}
	return enc.Encode(b.Result)
}

func writeText(w io.Writer, b recommend.Breakdown, explain bool) {
	if !b.Complete {
		fmt.Fprintln(w, "Incomplete profile: weight, age, and height are required (and body fat for athletes)")
	}
	r := b.Result
	fmt.Fprintf(w, "Calories: %d kcal\nProtein:  %d g\nCarbs:    %d g\nFat:      %d g\n",
		r.CaloriesKcal, r.ProteinGrams, r.CarbsGrams, r.FatGrams)
	if explain && b.Complete {
		fmt.Fprintf(w, "\nModel:           %s\nBaseline:        %.2f kcal\nActivity factor: %.2f\nTDEE:            %.2f kcal\nGoal multiplier: %.3f\nAdjusted:        %.2f kcal\n",
			b.Model, b.BaselineKcal, b.ActivityFactor, b.TDEEKcal, b.GoalMultiplier, b.AdjustedKcal)
	}
}
