// Command debug_reconcile replays a reconciliation over exported snapshots.
//
// Usage:
//
//	debug_reconcile members.json areas.json [supporters.yaml]
//
// members.json is the body of GET /patreon/members, areas.json the body of GET /dragonite/areas.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	dmodels "patron-manager/feature/dragonite/models"
	pmodels "patron-manager/feature/patreon/models"
	"patron-manager/feature/reconcile"
	"patron-manager/feature/supporters"
)

func main() {
	if len(os.Args) < 3 {
		log.Fatalf("usage: %s members.json areas.json [supporters.yaml]", os.Args[0])
	}

	var members []*pmodels.Member
	readJSON(os.Args[1], &members)
	var areas []dmodels.Area
	readJSON(os.Args[2], &areas)

	static := supporters.Builtin()
	if len(os.Args) > 3 {
		data, err := os.ReadFile(os.Args[3])
		if err != nil {
			log.Fatal(err)
		}
		if static, err = supporters.Parse(data); err != nil {
			log.Fatal(err)
		}
	}

	fmt.Println("=== Snapshot ===")
	fmt.Printf("Members: %d, areas: %d, supporters: %d, aliases: %d\n",
		len(members), len(areas), len(static.Supporters()), len(static.AliasTokens()))

	report := reconcile.NewEngine().Run(reconcile.Input{Members: members, Static: static, Areas: areas})

	fmt.Println("\n=== Summary ===")
	out, _ := json.MarshalIndent(report.Summary, "", "  ")
	fmt.Println(string(out))

	fmt.Println("\n=== Unresolved tokens ===")
	for _, tok := range report.ObservedTokens {
		if _, ok := static.Alias(tok); !ok {
			fmt.Printf("token %s has no alias\n", tok)
		}
	}

	fmt.Println("\n=== Username audit ===")
	for _, name := range report.UsernameAudit {
		fmt.Println(name)
	}
}

func readJSON(path string, v any) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatal(err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Fatalf("failed to parse %s: %v", path, err)
	}
}
