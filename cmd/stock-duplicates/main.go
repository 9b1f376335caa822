// Reporte de línea de comandos de pares OUTPUT/SITE_ALLOCATION sospechosos de
// doble descuento. Lo usa operaciones para cuadrar el inventario de fin de mes
// sin pasar por la API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/tu-usuario/almacen-erp/internal/application/stockmovement"
	"github.com/tu-usuario/almacen-erp/internal/infrastructure/postgres"
	"github.com/tu-usuario/almacen-erp/pkg/config"
	"github.com/tu-usuario/almacen-erp/pkg/logger"
)

func main() {
	fromFlag := flag.String("from", "", "inicio del rango (YYYY-MM-DD, opcional)")
	toFlag := flag.String("to", "", "fin del rango (YYYY-MM-DD, opcional)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "warn"})

	from, err := parseDay(*fromFlag, false)
	if err != nil {
		log.Fatal().Err(err).Msg("flag -from inválido")
	}
	to, err := parseDay(*toFlag, true)
	if err != nil {
		log.Fatal().Err(err).Msg("flag -to inválido")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	report := stockmovement.NewDuplicateMovementReport(
		postgres.NewStockMovementRepository(pool),
		postgres.NewProductRepository(pool),
		postgres.NewWarehouseRepository(pool),
		postgres.NewSiteRepository(pool),
	)
	pairs, err := report.Execute(ctx, from, to)
	if err != nil {
		log.Fatal().Err(err).Msg("generar reporte")
	}

	if len(pairs) == 0 {
		fmt.Println("Sin pares sospechosos en el rango.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FECHA\tPRODUCTO\tBODEGA\tCANTIERE\tOUTPUT\tCANT\tALLOCATION\tCANT\tREF")
	for _, p := range pairs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.Date.Format("2006-01-02"), p.ProductName, p.WarehouseName, p.SiteName,
			p.OutputCode, p.OutputQuantity.String(),
			p.AllocationCode, p.AllocationQuantity.String(),
			p.ReferenceDocument,
		)
	}
	w.Flush()
	fmt.Printf("\n%d pares sospechosos.\n", len(pairs))
}

// parseDay interpreta YYYY-MM-DD; con endOfDay el rango incluye el día completo.
func parseDay(s string, endOfDay bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("fecha %q: se espera YYYY-MM-DD", s)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
