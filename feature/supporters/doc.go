// Package supporters loads the static reconciliation inputs: the tier quota table, the manually
// curated supporter list and the alias table mapping legacy UUID tokens to Patreon ids.
//
// The inputs are read once at start from a YAML file, from the storage bucket, or from the
// builtin list, and never change afterwards.
//
//	tiers:
//	  "23548931": 2
//	supporters:
//	  - discordId: "884905804757622835"
//	    name: swollywoood
//	    quota: 1
//	aliases:
//	  "0b7c6b6e-8a0e-4b43-9a43-3f7d3f1d2c11": "4242"
package supporters
