package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/tomastoth/uniswap-trader-profit-calculator/internal/domain"
)

// Console implements ports.Notifier.
type Console struct {
	out     io.Writer
	verbose bool
}

// NewConsole creates a notifier that writes to stdout.
func NewConsole(verbose bool) *Console {
	return &Console{out: os.Stdout, verbose: verbose}
}

// NewConsoleWriter creates a notifier for tests.
func NewConsoleWriter(w io.Writer, verbose bool) *Console {
	return &Console{out: w, verbose: verbose}
}

// Notify prints the run report: realized trades, open positions and totals.
func (c *Console) Notify(_ context.Context, run domain.Run) error {
	fmt.Fprintf(c.out, "\n=== PROFIT REPORT %s ===\n", run.Trader.Hex())
	fmt.Fprintf(c.out, "  run %s | %d swaps processed | started %s\n\n",
		run.ID, run.Swaps, run.StartedAt.Format("2006-01-02 15:04:05"))

	if len(run.Realized) == 0 {
		fmt.Fprintln(c.out, "  no realized trades")
	} else {
		c.printRealized(run.Realized)
	}

	if len(run.Open) > 0 {
		c.printOpen(run.Open)
	}

	c.printSummary(run)
	return nil
}

// printRealized prints the closed trades table in realization order.
func (c *Console) printRealized(trades []domain.RealizedTrade) {
	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Token", "Amount", "Buy$", "Sell$", "Bought$", "Sold$", "Profit$", "Closed")

	for i, t := range trades {
		table.Append(
			fmt.Sprintf("%d", i+1),
			t.Token.Symbol,
			fmt.Sprintf("%.4f", t.Amount),
			fmt.Sprintf("%.4f", t.BuyPriceUSD),
			fmt.Sprintf("%.4f", t.SellPriceUSD),
			fmt.Sprintf("%.2f", t.BuyValueUSD),
			fmt.Sprintf("%.2f", t.SellValueUSD),
			fmt.Sprintf("%+.2f", t.ProfitUSD),
			t.SellTime.Format("2006-01-02 15:04"),
		)
	}

	table.Render()

	if c.verbose {
		for i, t := range trades {
			fmt.Fprintf(c.out, "  #%d %s  tx %s\n", i+1, t.Token.Symbol, t.SellTx)
		}
	}
}

// printOpen prints positions still held at the end of the run.
func (c *Console) printOpen(positions []domain.Position) {
	fmt.Fprintf(c.out, "\n  --- OPEN POSITIONS ---\n")

	table := tablewriter.NewWriter(c.out)
	table.Header("Token", "Held", "Avg Buy$", "Cost Basis$", "Buys")

	for _, p := range positions {
		table.Append(
			p.Token.Symbol,
			fmt.Sprintf("%.4f", p.HeldAmount),
			fmt.Sprintf("%.4f", p.AvgBuyPriceUSD),
			fmt.Sprintf("%.2f", p.CostBasis()),
			fmt.Sprintf("%d", len(p.Acquisitions)),
		)
	}

	table.Render()
}

// printSummary prints aggregate totals for the run.
func (c *Console) printSummary(run domain.Run) {
	total := run.TotalProfitUSD()
	wins := run.WinningTrades()

	fmt.Fprintf(c.out, "\n  Realized trades:  %d (%d winning)\n", len(run.Realized), wins)
	fmt.Fprintf(c.out, "  Open positions:   %d\n", len(run.Open))
	fmt.Fprintf(c.out, "  TOTAL PROFIT:     $%+.2f\n", total)

	if len(run.Realized) > 0 {
		winRate := float64(wins) / float64(len(run.Realized)) * 100
		fmt.Fprintf(c.out, "  Win rate:         %.1f%%\n", winRate)
	}

	fmt.Fprintf(c.out, "  [%s] report done\n\n", time.Now().Format("15:04:05"))
}
