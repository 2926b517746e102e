package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"store-ledger/internal/catalog"
	"store-ledger/internal/config"
	"store-ledger/internal/model"
	"store-ledger/pkg/jwt"
)

// Mints a session token for local use, e.g.
//
//	go run ./cmd/issue-token -role vendor -store khzema
func main() {
	role := flag.String("role", "vendor", "admin or vendor")
	store := flag.String("store", "", "store slug, required for vendors")
	subject := flag.String("subject", "local", "token subject")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	session, err := buildSession(*role, *store, *subject, catalog.Default())
	if err != nil {
		log.Fatal(err)
	}

	issuer, err := jwt.NewIssuer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		log.Fatal(err)
	}
	token, err := issuer.GenerateToken(session)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Fprintln(os.Stdout, token)
}

func buildSession(role, store, subject string, cat *catalog.Catalog) (model.Session, error) {
	r, err := model.ParseRole(role)
	if err != nil {
		return model.Session{}, err
	}
	session := model.Session{Subject: subject, Role: r}
	if r == model.RoleVendor {
		if !cat.HasStore(model.StoreID(store)) {
			return model.Session{}, fmt.Errorf("unknown store %q", store)
		}
		session.StoreID = model.StoreID(store)
	}
	return session, session.Validate()
}
