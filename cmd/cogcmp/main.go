// Command cogcmp is a development asset server for path-declared component
// frontends. Each argument declares one component as name=dir; the built
// frontend in dir is then served under the configured asset mount, with an
// index page listing everything registered.
//
//	cogcmp -addr :8765 annotate=./annotate/frontend/public
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/a-h/templ"

	"github.com/cogstack/cogcmp"
)

func main() {
	addr := flag.String("addr", ":8765", "listen address")
	module := flag.String("module", "dev", "module name to declare components under")
	flag.Parse()

	cfg, err := cogcmp.LoadConfig()
	if err != nil {
		log.Fatalf("cogcmp: %v", err)
	}

	reg := cogcmp.NewRegistry(&cfg)
	for _, arg := range flag.Args() {
		name, dir, ok := strings.Cut(arg, "=")
		if !ok {
			fmt.Fprintf(os.Stderr, "cogcmp: argument %q is not name=dir\n", arg)
			os.Exit(2)
		}
		if _, err := cogcmp.Declare(reg, *module, name, cogcmp.WithPath(dir)); err != nil {
			log.Fatalf("cogcmp: declare %q: %v", name, err)
		}
	}

	mux := http.NewServeMux()
	mux.Handle(cfg.AssetMount+"/", http.StripPrefix(cfg.AssetMount, reg.Handler()))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := indexPage(reg, cfg.AssetMount).Render(r.Context(), w); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	log.Printf("cogcmp: serving %d component(s) on %s%s", len(reg.Names()), *addr, cfg.AssetMount)
	log.Fatal(http.ListenAndServe(*addr, mux))
}

// indexPage lists the registered components with links into the asset mount.
func indexPage(reg *cogcmp.Registry, mount string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		names := reg.Names()
		sort.Strings(names)

		var sb strings.Builder
		sb.WriteString("<!doctype html><title>cogcmp dev server</title><h1>Components</h1><ul>")
		for _, name := range names {
			fmt.Fprintf(&sb, `<li><a href="%s/%s/">%s</a></li>`, mount, name, name)
		}
		sb.WriteString("</ul>")
		_, err := io.WriteString(w, sb.String())
		return err
	})
}
