// backup exporta o restaura el inventario completo desde la línea de comandos,
// usando el mismo almacenamiento que la API (STORE_DRIVER).
//
// Uso:
//
//	go run ./cmd/backup export [archivo.json]
//	go run ./cmd/backup restore archivo.json
//
// Por defecto export escribe stock-master-backup-AAAA-MM-DD.json en el directorio actual.
// restore acepta respaldos antiguos guardados en ISO-8859-1.
package main

import (
	"context"
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"github.com/vcmdu/Stock-master/internal/application/backup"
	"github.com/vcmdu/Stock-master/internal/application/inventory"
	"github.com/vcmdu/Stock-master/internal/infrastructure/kvstate"
	"github.com/vcmdu/Stock-master/internal/infrastructure/storefactory"
	"github.com/vcmdu/Stock-master/pkg/config"
	"github.com/vcmdu/Stock-master/pkg/logger"
	"golang.org/x/text/encoding/charmap"
)

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	cfg, err := config.Load()
	if err != nil {
		fail("Cargar configuración", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Output: os.Stderr})

	ctx := context.Background()
	store, closeStore, err := storefactory.Open(ctx, cfg, log)
	if err != nil {
		fail("Abrir almacenamiento", err)
	}
	defer closeStore()

	svc := inventory.NewService(kvstate.NewRepository(store, log), nil, nil, inventory.Config{}, log)
	if err := svc.Load(ctx); err != nil {
		fail("Cargar inventario", err)
	}
	uc := backup.NewUseCase(svc, time.Now)

	switch os.Args[1] {
	case "export":
		path := fmt.Sprintf("stock-master-backup-%s.json", time.Now().Format("2006-01-02"))
		if len(os.Args) > 2 {
			path = os.Args[2]
		}
		raw, err := uc.ExportJSON()
		if err != nil {
			fail("Serializar respaldo", err)
		}
		if err := os.WriteFile(path, raw, 0o644); err != nil {
			fail("Escribir archivo", err)
		}
		fmt.Printf("Respaldo escrito en %s\n", path)

	case "restore":
		if len(os.Args) < 3 {
			usage()
		}
		raw, err := os.ReadFile(os.Args[2])
		if err != nil {
			fail("Leer archivo", err)
		}
		raw, err = toUTF8(raw)
		if err != nil {
			fail("Decodificar ISO-8859-1", err)
		}
		res, err := uc.Restore(ctx, raw)
		if err != nil {
			fail("Restaurar", err)
		}
		fmt.Printf("Restaurados %d productos y %d transacciones (%d migrados de categoría a marca)\n",
			res.Products, res.Transactions, res.Migrated)

	default:
		usage()
	}
}

// toUTF8 deja pasar UTF-8 válido y transcodifica lo demás desde ISO-8859-1.
func toUTF8(raw []byte) ([]byte, error) {
	if utf8.Valid(raw) {
		return raw, nil
	}
	return charmap.ISO8859_1.NewDecoder().Bytes(raw)
}

func usage() {
	fmt.Fprintln(os.Stderr, "Uso: backup export [archivo.json] | backup restore archivo.json")
	os.Exit(2)
}

func fail(step string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", step, err)
	os.Exit(1)
}
