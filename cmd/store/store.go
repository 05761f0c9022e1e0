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

package store

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-pel/cmd/decode"
	"jinr.ru/greenlab/go-pel/pkg/command"
	"jinr.ru/greenlab/go-pel/pkg/config"
	"jinr.ru/greenlab/go-pel/pkg/pel"
	"jinr.ru/greenlab/go-pel/pkg/report"
	pkgstore "jinr.ru/greenlab/go-pel/pkg/store"
)

func NewCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Keep decoded log captures in the local store",
	}
	cmd.AddCommand(NewImportCommand(cfg))
	cmd.AddCommand(NewListCommand(cfg))
	cmd.AddCommand(NewShowCommand(cfg))
	cmd.AddCommand(NewDeleteCommand(cfg))
	return cmd
}

func parseID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("Wrong log id %q: %w", s, err)
	}
	return id, nil
}

func NewImportCommand(cfg *config.Config) *cobra.Command {
	flags := &decode.DecodeFlags{}
	cmd := &cobra.Command{
		Use:   "import FILE...",
		Short: "Decode log captures and keep them in the store",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.Apply(cmd, cfg)
			for _, path := range args {
				record, err := command.ImportFile(path, cfg)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %s: device: %s id: %d events: %d\n",
					path, record.Serial, record.ID, record.Summary.NumEvents)
			}
			return nil
		},
	}
	flags.AddFlags(cmd)
	return cmd
}

func NewListCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [SERIAL]",
		Short: "List devices or the logs of a device",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return command.WithStore(cfg, func(st *pkgstore.Store) error {
				if len(args) == 0 {
					devices, err := st.Devices()
					if err != nil {
						return err
					}
					for _, device := range devices {
						fmt.Fprintln(cmd.OutOrStdout(), device)
					}
					return nil
				}
				records, err := st.List(args[0])
				if err != nil {
					return err
				}
				for _, r := range records {
					fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%d bytes\t%d events\t%d warnings\n",
						r.ID, r.Imported.Format("2006-01-02 15:04:05"), r.Size, r.Summary.NumEvents, r.Summary.Warnings)
				}
				return nil
			})
		},
	}
	return cmd
}

func NewShowCommand(cfg *config.Config) *cobra.Command {
	var format string
	var summary bool
	flags := &decode.DecodeFlags{}
	cmd := &cobra.Command{
		Use:   "show SERIAL ID",
		Short: "Decode a stored log",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			flags.Apply(cmd, cfg)
			return command.WithStore(cfg, func(st *pkgstore.Store) error {
				if summary {
					record, err := st.Record(args[0], id)
					if err != nil {
						return err
					}
					return printReport(cmd, record, f)
				}
				raw, err := st.Get(args[0], id)
				if err != nil {
					return err
				}
				l, err := pel.Decode(raw, command.DecodeOptions(cfg))
				if err != nil {
					return err
				}
				return printReport(cmd, report.New(l), f)
			})
		},
	}
	cmd.Flags().StringVar(&format, decode.FormatOptionName, string(report.FormatYAML), "Output format. Must be one of: yaml, json.")
	cmd.Flags().BoolVar(&summary, decode.SummaryOptionName, false, "Print the stored record instead of the decoded log")
	flags.AddFlags(cmd)
	return cmd
}

func printReport(cmd *cobra.Command, v interface{}, format report.Format) error {
	data, err := report.Marshal(v, format)
	if err != nil {
		return err
	}
	if format == report.FormatYAML {
		fmt.Fprint(cmd.OutOrStdout(), "---\n"+string(data))
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func NewDeleteCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete SERIAL ID",
		Short: "Delete a stored log",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			return command.WithStore(cfg, func(st *pkgstore.Store) error {
				return st.Delete(args[0], id)
			})
		},
	}
	return cmd
}
