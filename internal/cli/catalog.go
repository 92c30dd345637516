package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rogerio-castellano/acme-storefront/internal/catalog"
	"github.com/rogerio-castellano/acme-storefront/internal/models"
	"github.com/rogerio-castellano/acme-storefront/internal/repo"
)

func newCatalogCmd() *cobra.Command {
	var category, search, sort string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the catalog filtered and sorted like the shop page",
		Example: `  storefront catalog --category stickers
  storefront catalog --search hat --sort price-desc`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			products, total, err := repo.NewSeededProductRepository().Filter(repo.ProductFilter{
				Category: catalog.NormalizeCategory(category),
				Search:   search,
				Sort:     catalog.ParseSortKey(sort),
			})
			if err != nil {
				return err
			}
			return printProducts(cmd.OutOrStdout(), products, total)
		},
	}
	cmd.Flags().StringVar(&category, "category", catalog.AllCategories, "Category slug")
	cmd.Flags().StringVarP(&search, "search", "q", "", "Search text")
	cmd.Flags().StringVar(&sort, "sort", string(catalog.SortRelevance), "relevance, trending, latest, price-asc or price-desc")
	return cmd
}

func printProducts(out io.Writer, products []models.Product, total int) error {
	if total == 0 {
		_, err := fmt.Fprintln(out, "No products found matching your criteria.")
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tTRENDING\tADDED")
	for _, p := range products {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%t\t%s\n", p.ID, p.Name, p.Category, p.Price.StringFixed(2), p.Trending, p.DateAdded.Format("2006-01-02"))
	}
	return tw.Flush()
}
