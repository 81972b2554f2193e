package options

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// MCPOptions configures how gantt mcp is served.
type MCPOptions struct {
	Transport string
	Host      string
	Port      int
	Path      string
	TLSCert   string
	TLSKey    string
}

func AddMCPArgs(cmd *cobra.Command, o *MCPOptions) {
	cmd.Flags().StringVar(&o.Transport, "transport", "http", "Transport to use. One of 'http' or 'stdio'.")
	cmd.Flags().StringVar(&o.Host, "http-host", "127.0.0.1", "Interface for the HTTP transport.")
	cmd.Flags().IntVar(&o.Port, "http-port", 8080, "Port for the HTTP transport, 0 picks a free port.")
	cmd.Flags().StringVar(&o.Path, "http-path", "/mcp", "HTTP endpoint path.")
	cmd.Flags().StringVar(&o.TLSCert, "http-tls-cert", "", "TLS certificate file, serves HTTPS when set with --http-tls-key.")
	cmd.Flags().StringVar(&o.TLSKey, "http-tls-key", "", "TLS private key file.")
	_ = cmd.RegisterFlagCompletionFunc("transport", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"http", "stdio"}, cobra.ShellCompDirectiveNoFileComp
	})
}

// Validate normalizes the flags and rejects impossible combinations.
func (o *MCPOptions) Validate() error {
	o.Transport = strings.ToLower(strings.TrimSpace(o.Transport))
	switch o.Transport {
	case "":
		o.Transport = "http"
	case "http", "stdio":
	default:
		return fmt.Errorf("unsupported transport %q (expected http or stdio)", o.Transport)
	}
	if o.Port < 0 || o.Port > 65535 {
		return fmt.Errorf("invalid http-port %d", o.Port)
	}
	o.TLSCert, o.TLSKey = strings.TrimSpace(o.TLSCert), strings.TrimSpace(o.TLSKey)
	if (o.TLSCert == "") != (o.TLSKey == "") {
		return errors.New("--http-tls-cert and --http-tls-key must be set together")
	}
	return nil
}

// Addr is the listen address.
func (o *MCPOptions) Addr() string {
	host := strings.TrimSpace(o.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	return net.JoinHostPort(host, strconv.Itoa(o.Port))
}

// Endpoint is the HTTP path, always rooted.
func (o *MCPOptions) Endpoint() string {
	path := strings.TrimSpace(o.Path)
	if path == "" {
		return "/mcp"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

// URL describes where a client reaches the server once it listens on a.
// Wildcard hosts are shown as the loopback address.
func (o *MCPOptions) URL(a net.Addr) string {
	scheme := "http"
	if o.TLSCert != "" {
		scheme = "https"
	}
	tcp, ok := a.(*net.TCPAddr)
	if !ok {
		return scheme + "://" + o.Addr() + o.Endpoint()
	}
	host := strings.TrimSpace(o.Host)
	switch {
	case tcp.IP != nil && !tcp.IP.IsUnspecified():
		host = tcp.IP.String()
	case host == "" || host == "0.0.0.0" || host == "::":
		host = "127.0.0.1"
	}
	return fmt.Sprintf("%s://%s%s", scheme, net.JoinHostPort(host, strconv.Itoa(tcp.Port)), o.Endpoint())
}
