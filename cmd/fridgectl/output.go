package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/DaDevFox/fridgemate/internal/domain"
	"github.com/DaDevFox/fridgemate/internal/grpcapi"
	"github.com/DaDevFox/fridgemate/internal/service"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func formatExpiry(date *domain.Date) string {
	if date == nil {
		return "-"
	}
	return date.Time().Format(domain.DisplayDateLayout)
}

func formatDaysRemaining(days *int) string {
	if days == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *days)
}

func renderItemPage(w io.Writer, resp *grpcapi.ListItemsResponse) error {
	page := resp.Page
	fmt.Fprintf(w, "All: %d  Expired: %d  Recommend: %d\n\n",
		resp.Counts.Total(), resp.Counts.Expired, resp.Counts.ExpiringSoon)

	if len(page.Items) == 0 {
		fmt.Fprintln(w, "No items.")
		return nil
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tQUANTITY\tEXPIRES\tDAYS\tSTATUS")
	for _, item := range page.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			item.Item.ID,
			item.Item.Name,
			item.Item.Quantity,
			formatExpiry(item.Item.ExpiryDate),
			formatDaysRemaining(item.DaysRemaining),
			item.Status.Label(),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nPage %d of %d (%d items, %d per page)\n",
		page.CurrentPage, page.TotalPages, page.TotalCount, page.PageSize)
	return nil
}

func renderProductTypes(w io.Writer, types []*domain.ProductType) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tSHELF DAYS\tUNIT")
	for _, t := range types {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", t.ID, t.Name, t.ShelfDays, t.QuantityUnit)
	}
	return tw.Flush()
}

func renderBudget(w io.Writer, resp *grpcapi.BudgetResponse) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "Total:\t%s\n", resp.Budget.Total.StringFixed(2))
	fmt.Fprintf(tw, "Spent:\t%s\n", resp.Budget.Spent.StringFixed(2))
	fmt.Fprintf(tw, "Remaining:\t%s\n", resp.Remaining.StringFixed(2))
	return tw.Flush()
}

func renderNotifications(w io.Writer, notifications []*domain.Notification) error {
	if len(notifications) == 0 {
		fmt.Fprintln(w, "No notifications.")
		return nil
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTYPE\tCREATED\tMESSAGE")
	for _, n := range notifications {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			n.ID, n.Type, n.CreatedAt.Local().Format("02.01.2006 15:04"), strings.TrimSpace(n.Message))
	}
	return tw.Flush()
}

func renderRecipePage(w io.Writer, resp *grpcapi.ListRecipesResponse) error {
	page := resp.Page
	if len(page.Items) == 0 {
		fmt.Fprintln(w, "No recipes.")
		return nil
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tSERVING\tINGREDIENTS")
	for _, r := range page.Items {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", r.ID, r.Name, r.Serving, strings.Join(r.IngredientList(), ", "))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nPage %d of %d (%d recipes, %d per page)\n",
		page.CurrentPage, page.TotalPages, page.TotalCount, page.PageSize)
	return nil
}

func renderRecipe(w io.Writer, recipe *domain.Recipe) error {
	fmt.Fprintf(w, "%s (%d serving(s))\n\n", recipe.Name, recipe.Serving)
	for _, ingredient := range recipe.IngredientList() {
		fmt.Fprintf(w, "  - %s\n", ingredient)
	}
	fmt.Fprintf(w, "\n%s\n", recipe.Instructions)
	return nil
}

func renderSuggestions(w io.Writer, suggestions []service.RecipeSuggestion) error {
	if len(suggestions) == 0 {
		fmt.Fprintln(w, "No recipes match the fridge.")
		return nil
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tHAVE\tMISSING")
	for _, s := range suggestions {
		missing := strings.Join(s.Missing, ", ")
		if missing == "" {
			missing = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.Recipe.ID, s.Recipe.Name, strings.Join(s.Matched, ", "), missing)
	}
	return tw.Flush()
}

func boughtMark(bought bool) string {
	if bought {
		return "[x]"
	}
	return "[ ]"
}

func renderShoppingList(w io.Writer, entries []*domain.ShoppingEntry) error {
	if len(entries) == 0 {
		fmt.Fprintln(w, "The shopping list is empty.")
		return nil
	}

	tw := newTable(w)
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", boughtMark(e.Bought), e.Name, e.ID)
	}
	return tw.Flush()
}
