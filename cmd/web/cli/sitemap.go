package cli

import (
	"github.com/spf13/cobra"

	"batarikh-mirror/services"
)

var sitemapCmd = &cobra.Command{
	Use:   "sitemap",
	Short: "Print the sitemap XML served at /sitemap.xml",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		body, err := services.NewSitemapService(cfg.Site.URL, cfg.Sitemap.MaxPages).XML()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(append(body, '\n'))
		return err
	},
}

func init() {
	rootCmd.AddCommand(sitemapCmd)
}
