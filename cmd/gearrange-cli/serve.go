package cmd

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/velotools/gearrange-cli/internal/config"
	"github.com/velotools/gearrange-cli/internal/logging"
	"github.com/velotools/gearrange-cli/internal/session"
	"github.com/velotools/gearrange-cli/internal/ui"
	"github.com/velotools/gearrange-cli/internal/web"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculator as a web frontend",
	Long:  "Start a local web server with the form-based calculator frontend: add and remove drivetrain configurations, see the range plot per configuration, download the data as CSV. A JSON API is available under /api/v1.",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	registry := session.NewRegistry()

	if path := viper.GetString("serve.file"); path != "" {
		configs, err := config.Read(path)
		if err != nil {
			return err
		}
		built, err := buildConfigs(configs)
		if err != nil {
			return err
		}
		for _, b := range built {
			if _, err := registry.Add(b.Name, b.Drivetrain, b.Cadence); err != nil {
				return err
			}
		}
	}

	log := &logging.Logger{
		PrefixText:  "Serve:",
		PrefixColor: ui.FgCyan,
	}
	if viper.GetBool("serve.verbose") {
		log.SetWriter(cmd.ErrOrStderr())
	}

	srv, err := web.New(registry, log)
	if err != nil {
		return err
	}

	host := viper.GetString("serve.host")
	port := viper.GetInt("serve.port")
	addr := net.JoinHostPort(host, strconv.Itoa(port))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	displayHost := host
	if displayHost == "" {
		displayHost = "localhost"
	}
	cmd.Printf("%s %s\n",
		ui.Primary.Render("Serving the gear-range calculator on"),
		ui.Highlight.Render(fmt.Sprintf("http://%s:%d", displayHost, port)),
	)
	cmd.Println(ui.Muted.Render("ctrl+c to stop"))

	return srv.ListenAndServe(ctx, addr)
}

func init() {
	serveCmd.Flags().StringP("file", "f", "", "YAML file with configurations to preload into the session")
	serveCmd.Flags().IntP("port", "p", 8501, "Port to listen on")
	serveCmd.Flags().String("host", "localhost", "Host to bind to (empty for all interfaces)")
	serveCmd.Flags().BoolP("verbose", "v", false, "Log requests that change the session")

	for _, name := range []string{"file", "port", "host", "verbose"} {
		viper.BindPFlag("serve."+name, serveCmd.Flags().Lookup(name))
	}
}
