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

package serve

import (
	"fmt"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-pel/pkg/command"
	"jinr.ru/greenlab/go-pel/pkg/config"
)

const (
	AddressOptionName = "address"
	PortOptionName    = "port"
	StoreOptionName   = "store"
)

func NewCommand(cfg *config.Config) *cobra.Command {
	var address, storePath string
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if address != "" {
				cfg.APIConfig.Address = address
			}
			if port != 0 {
				cfg.APIConfig.Port = port
			}
			if storePath != "" {
				cfg.StoreConfig.Path = storePath
			}
			return command.StartApiServer(cfg)
		},
	}
	cmd.Flags().StringVar(&address, AddressOptionName, "", fmt.Sprintf("Address to bind. E.g. %s", config.DefaultAPIAddress))
	cmd.Flags().IntVar(&port, PortOptionName, 0, fmt.Sprintf("Port number to bind. E.g. %d", config.DefaultAPIPort))
	cmd.Flags().StringVar(&storePath, StoreOptionName, "", "Path to the store database")
	return cmd
}
