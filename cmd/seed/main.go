// seed generates a SQL script that populates the database with demo pharmacy
// data (suppliers, stocking locations and a starter catalog).
//
// Usage: go run ./cmd/seed [output.sql]
// By default it writes migrations/002_seed_demo.sql.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type seedSupplier struct {
	id, name, contact, email, phone string
}

type seedLocation struct {
	id, name, locType, address string
}

type seedProduct struct {
	id, name, category, sku, barcode, batch string
	quantity, reorderLevel                  int
	cost, price                             float64
	expiry                                  string // YYYY-MM-DD, empty for none
	supplierID, locationID                  string
}

var suppliers = []seedSupplier{
	{"b0000000-0000-0000-0000-000000000001", "PharmaCorp", "Dana Reyes", "orders@pharmacorp.example", "+1-555-0101"},
	{"b0000000-0000-0000-0000-000000000002", "MediSupply", "Lee Okafor", "sales@medisupply.example", "+1-555-0102"},
	{"b0000000-0000-0000-0000-000000000003", "HealthPlus Distribution", "Sam Whitfield", "accounts@healthplus.example", "+1-555-0103"},
}

var locations = []seedLocation{
	{"c0000000-0000-0000-0000-000000000001", "Main Floor", "retail", "Front-of-store shelving"},
	{"c0000000-0000-0000-0000-000000000002", "Pharmacy Counter", "pharmacy", "Behind the counter"},
	{"c0000000-0000-0000-0000-000000000003", "Back Storage", "storage", "Overflow and bulk storage"},
}

var products = []seedProduct{
	{"a0000000-0000-0000-0000-000000000001", "Amoxicillin 500mg", "prescription", "RX-AMOX-500", "8901234567890", "BT2024-001", 245, 100, 6.50, 12.99, "2025-08-15", suppliers[0].id, locations[1].id},
	{"a0000000-0000-0000-0000-000000000002", "Lisinopril 10mg", "prescription", "RX-LISI-010", "8901234567891", "BT2024-002", 180, 80, 7.75, 15.50, "2025-12-20", suppliers[0].id, locations[1].id},
	{"a0000000-0000-0000-0000-000000000003", "Metformin 850mg", "prescription", "RX-METF-850", "8901234567892", "BT2024-003", 65, 100, 9.50, 18.99, "2025-03-10", suppliers[1].id, locations[1].id},
	{"a0000000-0000-0000-0000-000000000004", "Atorvastatin 20mg", "prescription", "RX-ATOR-020", "8901234567893", "BT2024-004", 320, 150, 11.25, 22.50, "2026-01-05", suppliers[0].id, locations[1].id},
	{"a0000000-0000-0000-0000-000000000005", "Omeprazole 40mg", "prescription", "RX-OMEP-040", "8901234567894", "BT2024-005", 42, 75, 7.40, 14.75, "2025-02-28", suppliers[1].id, locations[1].id},
	{"a0000000-0000-0000-0000-000000000006", "Levothyroxine 100mcg", "prescription", "RX-LEVO-100", "8901234567895", "BT2024-006", 210, 90, 8.50, 16.99, "2025-11-15", suppliers[0].id, locations[1].id},
	{"a0000000-0000-0000-0000-000000000007", "Ibuprofen 200mg", "otc", "OTC-IBUP-200", "8901234567896", "BT2024-007", 540, 200, 2.10, 6.49, "2026-06-30", suppliers[1].id, locations[0].id},
	{"a0000000-0000-0000-0000-000000000008", "Acetaminophen 500mg", "otc", "OTC-ACET-500", "8901234567897", "BT2024-008", 480, 200, 1.90, 5.99, "2026-04-18", suppliers[1].id, locations[0].id},
	{"a0000000-0000-0000-0000-000000000009", "Vitamin D3 2000IU", "supplement", "SUP-VITD-2K", "8901234567898", "BT2024-009", 150, 60, 3.25, 9.99, "2026-09-01", suppliers[2].id, locations[0].id},
	{"a0000000-0000-0000-0000-000000000010", "Omega-3 Fish Oil", "supplement", "SUP-OMG3-1K", "8901234567899", "BT2024-010", 95, 50, 4.80, 13.49, "2025-10-12", suppliers[2].id, locations[0].id},
	{"a0000000-0000-0000-0000-000000000011", "Digital Thermometer", "retail", "RTL-THRM-001", "8901234567900", "", 34, 15, 5.50, 14.99, "", suppliers[2].id, locations[0].id},
	{"a0000000-0000-0000-0000-000000000012", "First Aid Kit", "retail", "RTL-FAID-001", "8901234567901", "", 22, 10, 9.00, 24.99, "", suppliers[2].id, locations[2].id},
}

func main() {
	outPath := filepath.Join("migrations", "002_seed_demo.sql")
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	var b strings.Builder
	b.WriteString("-- Demo data: suppliers, locations and starter catalog.\n")
	b.WriteString("-- Generated by cmd/seed. Safe to re-run: rows upsert on primary key.\n\n")

	b.WriteString("INSERT INTO suppliers (id, name, contact_person, email, phone) VALUES\n")
	for i, s := range suppliers {
		fmt.Fprintf(&b, "  ('%s', %s, %s, %s, %s)%s\n",
			s.id, quote(s.name), quote(s.contact), quote(s.email), quote(s.phone), sep(i, len(suppliers)))
	}
	b.WriteString("ON CONFLICT (id) DO NOTHING;\n\n")

	b.WriteString("INSERT INTO locations (id, name, type, address) VALUES\n")
	for i, l := range locations {
		fmt.Fprintf(&b, "  ('%s', %s, %s, %s)%s\n", l.id, quote(l.name), quote(l.locType), quote(l.address), sep(i, len(locations)))
	}
	b.WriteString("ON CONFLICT (id) DO NOTHING;\n\n")

	b.WriteString("INSERT INTO inventory (id, name, category, sku, barcode, batch_number, quantity, unit, cost_price, selling_price, supplier_id, location_id, expiry_date, reorder_level) VALUES\n")
	for i, p := range products {
		expiry := "NULL"
		if p.expiry != "" {
			expiry = "'" + p.expiry + "'"
		}
		fmt.Fprintf(&b, "  ('%s', %s, '%s', '%s', %s, %s, %d, 'unit', %.2f, %.2f, '%s', '%s', %s, %d)%s\n",
			p.id, quote(p.name), p.category, p.sku, quote(p.barcode), quote(p.batch),
			p.quantity, p.cost, p.price, p.supplierID, p.locationID, expiry, p.reorderLevel,
			sep(i, len(products)))
	}
	b.WriteString("ON CONFLICT (id) DO NOTHING;\n")

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "create output dir: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(outPath, []byte(b.String()), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write %s: %v\n", outPath, err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s (%d suppliers, %d locations, %d products)\n", outPath, len(suppliers), len(locations), len(products))
}

func quote(s string) string {
	if s == "" {
		return "NULL"
	}
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func sep(i, n int) string {
	if i == n-1 {
		return ""
	}
	return ","
}
