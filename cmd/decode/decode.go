/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package decode

import (
	"fmt"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-pel/pkg/command"
	"jinr.ru/greenlab/go-pel/pkg/config"
	"jinr.ru/greenlab/go-pel/pkg/report"
)

const (
	FormatOptionName          = "format"
	HeadersOnlyOptionName     = "headers-only"
	StopAtLogLengthOptionName = "stop-at-log-length"
	SummaryOptionName         = "summary"
)

// DecodeFlags are the command line overrides of the decode config
type DecodeFlags struct {
	HeadersOnly     bool
	StopAtLogLength bool
}

// AddFlags registers the decode flags on cmd
func (f *DecodeFlags) AddFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.HeadersOnly, HeadersOnlyOptionName, false, "Keep payloads raw, decode headers only")
	cmd.Flags().BoolVar(&f.StopAtLogLength, StopAtLogLengthOptionName, false, "Stop decoding when the log length is reached")
}

// Apply overrides the config with the flags set on the command line
func (f *DecodeFlags) Apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed(HeadersOnlyOptionName) {
		cfg.DecodeConfig.HeadersOnly = f.HeadersOnly
	}
	if cmd.Flags().Changed(StopAtLogLengthOptionName) {
		cfg.DecodeConfig.StopAtLogLength = f.StopAtLogLength
	}
}

func NewCommand(cfg *config.Config) *cobra.Command {
	var format string
	flags := &DecodeFlags{}
	cmd := &cobra.Command{
		Use:   "decode FILE",
		Short: "Decode a Persistent Event Log capture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			flags.Apply(cmd, cfg)
			l, err := command.DecodeFile(args[0], cfg)
			if err != nil {
				return err
			}
			if f == report.FormatYAML {
				fmt.Fprint(cmd.OutOrStdout(), report.New(l).String())
				return nil
			}
			data, err := report.Marshal(report.New(l), f)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
	cmd.Flags().StringVar(&format, FormatOptionName, string(report.FormatYAML), "Output format. Must be one of: yaml, json.")
	flags.AddFlags(cmd)
	return cmd
}

func NewEventsCommand(cfg *config.Config) *cobra.Command {
	var summary bool
	flags := &DecodeFlags{}
	cmd := &cobra.Command{
		Use:   "events FILE",
		Short: "Print one line per event of a log capture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.Apply(cmd, cfg)
			l, err := command.DecodeFile(args[0], cfg)
			if err != nil {
				return err
			}
			if summary {
				data, err := report.Marshal(report.Summarize(l), report.FormatYAML)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), string(data))
				return nil
			}
			return report.WriteEvents(cmd.OutOrStdout(), l)
		},
	}
	cmd.Flags().BoolVar(&summary, SummaryOptionName, false, "Print event counts instead of events")
	flags.AddFlags(cmd)
	return cmd
}
