package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thanhvudev/furnimart/app/models"
	"github.com/thanhvudev/furnimart/app/routes"
	"github.com/thanhvudev/furnimart/pkg/app"
	"github.com/thanhvudev/furnimart/pkg/router"
)

// newApp wires the application: routes plus the models auto-migrated on boot.
func newApp() *app.Application {
	return app.New().
		Routes(routes.Register).
		AutoMigrate(
			&models.Role{},
			&models.User{},
			&models.Category{},
			&models.Product{},
			&models.Order{},
			&models.OrderItem{},
			&models.DeliveryInfo{},
			&models.StatusOrder{},
			&models.Feedback{},
		)
}

// furnimart serve, start the HTTP server.
var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"run", "start"},
	Short:   "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return newApp().Serve()
	},
}

// furnimart route:list, print all registered routes.
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered named routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		r := router.New()
		routes.Register(r)

		infos := r.Routes()
		if len(infos) == 0 {
			fmt.Println("No named routes registered.")
			return nil
		}

		// Sort by path then method.
		sort.Slice(infos, func(i, j int) bool {
			if infos[i].Path != infos[j].Path {
				return infos[i].Path < infos[j].Path
			}
			return infos[i].Method < infos[j].Method
		})

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range infos {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}
