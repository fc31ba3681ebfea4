// Command seo previews and inspects page SEO metadata: meta tags, JSON-LD
// structured data, AMP conversion, site settings and editor panels.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"finitefield.org/hanko-seo/internal/amp"
	"finitefield.org/hanko-seo/internal/cms"
	"finitefield.org/hanko-seo/internal/panels"
	"finitefield.org/hanko-seo/internal/platform/config"
	"finitefield.org/hanko-seo/internal/seo"
	"finitefield.org/hanko-seo/internal/settings"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Extra config options are appended to
// the ones derived from flags.
func newRootCmd(extra ...config.Option) *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "seo",
		Short:         "Preview and inspect page SEO metadata",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the environment")

	load := func(cmd *cobra.Command) (*app, error) {
		opts := []config.Option{config.WithEnvFile(envFile)}
		return newApp(cmd.Context(), append(opts, extra...)...)
	}

	root.AddCommand(
		newServeCmd(load),
		newHeadCmd(load),
		newJSONLDCmd(load),
		newAMPCmd(),
		newSettingsCmd(load),
		newPanelsCmd(),
	)
	return root
}

type loader func(cmd *cobra.Command) (*app, error)

func newHeadCmd(load loader) *cobra.Command {
	var lang string
	cmd := &cobra.Command{
		Use:   "head <slug>",
		Short: "Print the rendered meta tags and structured data of a page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			page, err := a.pages.GetPage(ctx, args[0], lang)
			if err != nil {
				return pageError(args[0], err)
			}
			s, err := a.siteSettings(ctx)
			if err != nil {
				return err
			}
			head, err := a.renderer.Head(ctx, &page.Page, s)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(string(head)))
			return err
		},
	}
	cmd.Flags().StringVar(&lang, "lang", "en", "content language")
	return cmd
}

const (
	jsonldOrganization = "organization"
	jsonldArticle      = "article"
	jsonldPublisher    = "publisher"
)

func newJSONLDCmd(load loader) *cobra.Command {
	var (
		lang   string
		kind   string
		indent bool
	)
	cmd := &cobra.Command{
		Use:   "jsonld <slug>",
		Short: "Print the Schema.org JSON-LD of a page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			page, err := a.pages.GetPage(ctx, args[0], lang)
			if err != nil {
				return pageError(args[0], err)
			}
			resolver := a.renderer.Resolver()

			var data map[string]any
			switch strings.ToLower(kind) {
			case jsonldOrganization:
				data = resolver.Organization(ctx, &page.Page)
			case jsonldArticle:
				data = resolver.Article(ctx, &page.Page)
			case jsonldPublisher:
				data = resolver.Publisher(ctx, &page.Page)
				if data == nil {
					return fmt.Errorf("page %q has no publisher: set an organization type on it or the root page", args[0])
				}
			default:
				return fmt.Errorf("unknown --type %q (want organization, article or publisher)", kind)
			}
			return writeJSON(cmd.OutOrStdout(), data, indent)
		},
	}
	cmd.Flags().StringVar(&lang, "lang", "en", "content language")
	cmd.Flags().StringVar(&kind, "type", jsonldOrganization, "organization, article or publisher")
	cmd.Flags().BoolVar(&indent, "indent", false, "indent the output")
	return cmd
}

func newAMPCmd() *cobra.Command {
	var pretty bool
	cmd := &cobra.Command{
		Use:   "amp [file]",
		Short: "Convert an HTML fragment to AMP HTML (reads stdin when no file is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			src, err := io.ReadAll(in)
			if err != nil {
				return err
			}
			out, err := amp.Convert(string(src), pretty)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent one node per line")
	return cmd
}

func newSettingsCmd(load loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Read or change the site SEO settings",
	}

	get := &cobra.Command{
		Use:   "get",
		Short: "Print the site settings as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := load(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			s, err := a.siteSettings(cmd.Context())
			if err != nil {
				return err
			}
			return writeYAML(cmd.OutOrStdout(), s)
		},
	}

	var (
		ogMeta, twitterMeta, structMeta, ampPages bool
		twitterSite                               string
		reset                                     bool
	)
	set := &cobra.Command{
		Use:   "set",
		Short: "Change the site settings; only flags that are given are applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := load(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			ctx := cmd.Context()

			if reset {
				if err := a.store.Delete(ctx, a.cfg.Site.ID); err != nil && !errors.Is(err, settings.ErrNotFound) {
					return err
				}
			}
			s, err := a.siteSettings(ctx)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("og-meta") {
				s.OGMeta = ogMeta
			}
			if flags.Changed("twitter-meta") {
				s.TwitterMeta = twitterMeta
			}
			if flags.Changed("twitter-site") {
				s.TwitterSite = twitterSite
			}
			if flags.Changed("struct-meta") {
				s.StructMeta = structMeta
			}
			if flags.Changed("amp-pages") {
				s.AMPPages = ampPages
			}
			if err := a.store.Save(ctx, s); err != nil {
				return err
			}
			if a.cfg.Settings.Backend == config.BackendMemory {
				a.logger.Warn("settings saved to the memory backend are lost on exit; set SEO_SETTINGS_BACKEND")
			}
			return writeYAML(cmd.OutOrStdout(), s)
		},
	}
	set.Flags().BoolVar(&ogMeta, "og-meta", true, "emit Open Graph tags")
	set.Flags().BoolVar(&twitterMeta, "twitter-meta", true, "emit Twitter card tags")
	set.Flags().StringVar(&twitterSite, "twitter-site", "", "Twitter handle of the site owner")
	set.Flags().BoolVar(&structMeta, "struct-meta", true, "emit Schema.org structured data")
	set.Flags().BoolVar(&ampPages, "amp-pages", false, "serve AMP variants of pages")
	set.Flags().BoolVar(&reset, "reset", false, "restore defaults before applying flags")

	cmd.AddCommand(get, set)
	return cmd
}

func newPanelsCmd() *cobra.Command {
	var lang string
	cmd := &cobra.Command{
		Use:   "panels",
		Short: "Print the editor panel definitions as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeJSON(cmd.OutOrStdout(), panelsPayload(panels.New(nil, lang)), true)
		},
	}
	cmd.Flags().StringVar(&lang, "lang", "en", "label language (en or ja)")
	return cmd
}

type panelsResponse struct {
	Lang     string         `json:"lang"`
	Page     []panels.Panel `json:"page"`
	Settings []panels.Panel `json:"settings"`
}

func panelsPayload(set *panels.Set) panelsResponse {
	return panelsResponse{
		Lang:     set.Lang(),
		Page:     set.Panels(),
		Settings: set.SettingsPanels(),
	}
}

func pageError(slug string, err error) error {
	if errors.Is(err, cms.ErrNotFound) {
		return fmt.Errorf("page %q not found", slug)
	}
	return err
}

func writeJSON(w io.Writer, v any, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func writeYAML(w io.Writer, s seo.Settings) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}
