// Package protector links enabled protectors to their enabled rules.
package protector

import "github.com/activecm/wafreport/pkg/record"

//Table maps the id of every enabled protector to its enabled rules
type Table map[string][]record.ProtectionRule

// Resolve builds the association table. Disabled protectors are left out
// entirely. Each rule list keeps the input order and only holds rules that are
// enabled and reference the protector. Rules referencing an absent or disabled
// protector are dropped; Orphans reports them.
func Resolve(protectors []record.Protector, rules []record.ProtectionRule) Table {
	table := make(Table)
	for _, p := range protectors {
		if !p.Enabled {
			continue
		}
		if _, seen := table[p.ID]; seen {
			continue
		}
		matched := make([]record.ProtectionRule, 0)
		for _, r := range rules {
			if r.ProtectorID == p.ID && r.Enabled {
				matched = append(matched, r)
			}
		}
		table[p.ID] = matched
	}
	return table
}

// EnabledIDs returns the ids of the enabled protectors in input order, without duplicates
func EnabledIDs(protectors []record.Protector) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, p := range protectors {
		if p.Enabled && !seen[p.ID] {
			seen[p.ID] = true
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// States maps every protector id to its enabled flag. A protector listed more
// than once counts as enabled if any of its rows is.
func States(protectors []record.Protector) map[string]bool {
	states := make(map[string]bool, len(protectors))
	for _, p := range protectors {
		states[p.ID] = states[p.ID] || p.Enabled
	}
	return states
}

// Orphans returns the rules whose protector id matches no protector at all
func Orphans(protectors []record.Protector, rules []record.ProtectionRule) []record.ProtectionRule {
	known := make(map[string]bool, len(protectors))
	for _, p := range protectors {
		known[p.ID] = true
	}
	var orphans []record.ProtectionRule
	for _, r := range rules {
		if !known[r.ProtectorID] {
			orphans = append(orphans, r)
		}
	}
	return orphans
}
