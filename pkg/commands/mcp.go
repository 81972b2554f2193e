package commands

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"tableflip.dev/gantt/pkg/commands/options"
	"tableflip.dev/gantt/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command) {
	mo := &options.MCPOptions{}

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve projects over the Model Context Protocol",
		Long: `Launch an MCP server that exposes stored projects, their computed chart
layouts and task mutations through the Model Context Protocol.

Resources:
  gantt://projects
  gantt://projects/{name}
  gantt://projects/{name}/layout/{view}

Tools: list_tasks, add_task, update_task, delete_task, get_layout.`,
		Example: `
gantt mcp
gantt mcp --transport stdio
gantt mcp --http-host 0.0.0.0 --http-port 0
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if err := mo.Validate(); err != nil {
				return err
			}
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}

			r := mcp.Runner{
				Persistence: e.store,
				Name:        "gantt",
				Version:     version,
				Log:         e.log,
				Transport:   mcp.Transport(mo.Transport),
			}
			if r.Transport == mcp.TransportHTTP {
				r.HTTPListenAddr = mo.Addr()
				r.HTTPEndpointPath = mo.Endpoint()
				r.HTTPServerCert, r.HTTPServerKey = mo.TLSCert, mo.TLSKey
				r.OnHTTPListening = func(a net.Addr) {
					fmt.Fprintf(cmd.OutOrStdout(), "MCP HTTP server listening on %s\n", mo.URL(a))
				}
			}
			return r.Do(cmd.Context())
		},
	}

	options.AddMCPArgs(cmd, mo)

	topLevel.AddCommand(cmd)
}
