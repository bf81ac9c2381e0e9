package services

import (
	"fmt"
	"strings"

	"github.com/sedama0217-sketch/PMserch/models"
)

// PrintReport renders the end-of-run summary to stdout.
func PrintReport(r *models.RunReport) {
	thin := strings.Repeat("─", 40)

	fmt.Println()
	fmt.Printf("\033[1;33m  Run Summary\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Items on page      : \033[1m%d\033[0m\n", r.TotalItems)
	fmt.Printf("  In stock           : \033[1;32m%d\033[0m\n", r.InStock)
	fmt.Printf("  Sold out           : \033[1;31m%d\033[0m\n", r.SoldOut)
	fmt.Printf("  New this run       : \033[1m%d\033[0m\n", r.NewItems)
	fmt.Printf("  Restocked          : \033[1;32m%d\033[0m\n", r.Restocked)
	fmt.Printf("  Notifications sent : \033[1m%d\033[0m\n", r.Notifications)
	fmt.Println()
}
