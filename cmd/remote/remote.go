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

package remote

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-pel/cmd/decode"
	"jinr.ru/greenlab/go-pel/pkg/command"
	"jinr.ru/greenlab/go-pel/pkg/config"
	"jinr.ru/greenlab/go-pel/pkg/report"
)

const (
	AddressOptionName = "address"
	PortOptionName    = "port"
)

func NewCommand(cfg *config.Config) *cobra.Command {
	var address string
	var port int
	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Work with logs on an API server",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if parent := cmd.Root(); parent.PersistentPreRunE != nil {
				if err := parent.PersistentPreRunE(cmd, args); err != nil {
					return err
				}
			}
			if address != "" {
				cfg.APIConfig.Address = address
			}
			if port != 0 {
				cfg.APIConfig.Port = port
			}
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&address, AddressOptionName, "", fmt.Sprintf("API server address. E.g. %s", config.DefaultAPIAddress))
	cmd.PersistentFlags().IntVar(&port, PortOptionName, 0, fmt.Sprintf("API server port. E.g. %d", config.DefaultAPIPort))
	cmd.AddCommand(NewDecodeCommand(cfg))
	cmd.AddCommand(NewImportCommand(cfg))
	cmd.AddCommand(NewDevicesCommand(cfg))
	cmd.AddCommand(NewLogsCommand(cfg))
	return cmd
}

func NewDecodeCommand(cfg *config.Config) *cobra.Command {
	var format string
	var headersOnly bool
	cmd := &cobra.Command{
		Use:   "decode FILE",
		Short: "Decode a log capture on the API server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			raw, err := command.ReadCapture(args[0], cfg.DecodeConfig.MaxCaptureSize)
			if err != nil {
				return err
			}
			data, err := command.NewApiClient(cfg).Decode(raw, f, headersOnly)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(string(data), "\n"))
			return nil
		},
	}
	cmd.Flags().StringVar(&format, decode.FormatOptionName, string(report.FormatYAML), "Output format. Must be one of: yaml, json.")
	cmd.Flags().BoolVar(&headersOnly, decode.HeadersOnlyOptionName, false, "Keep payloads raw, decode headers only")
	return cmd
}

func NewImportCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import FILE...",
		Short: "Store log captures on the API server",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient := command.NewApiClient(cfg)
			for _, path := range args {
				raw, err := command.ReadCapture(path, cfg.DecodeConfig.MaxCaptureSize)
				if err != nil {
					return err
				}
				record, err := apiClient.Import(raw)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %s: device: %s id: %d\n", path, record.Serial, record.ID)
			}
			return nil
		},
	}
	return cmd
}

func NewDevicesCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "devices",
		Short: "List devices with logs on the API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			devices, err := command.NewApiClient(cfg).Devices()
			if err != nil {
				return err
			}
			for _, device := range devices {
				fmt.Fprintln(cmd.OutOrStdout(), device)
			}
			return nil
		},
	}
	return cmd
}

func NewLogsCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs SERIAL",
		Short: "List the logs of a device on the API server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := command.NewApiClient(cfg).Logs(args[0])
			if err != nil {
				return err
			}
			for _, r := range records {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%d bytes\n", r.ID, r.Imported.Format("2006-01-02 15:04:05"), r.Size)
			}
			return nil
		},
	}
	return cmd
}
