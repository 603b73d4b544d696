// Package entity contains the core business objects of the project.
package entity

// System setting keys. SystemSettings is a singleton key -> value mapping
// created on first backend initialization; it is mutated only through the
// bootstrap guard and the account lifecycle manager.
const (
	// SettingSuperadminExists is "true" iff an account with the superadmin
	// role exists. Kept in lockstep with the role-scoped existence query.
	SettingSuperadminExists = "superadmin_exists"

	// SettingDemoAccountsEnabled controls whether the fixed demo accounts
	// may authenticate against a reachable durable backend. Forced to
	// "false" the moment a superadmin is created, and stays false.
	SettingDemoAccountsEnabled = "demo_accounts_enabled"
)

// SystemSettings is the in-memory form of the settings singleton.
type SystemSettings map[string]string

// Bool reads a boolean-valued setting; missing keys report false.
func (s SystemSettings) Bool(key string) bool {
	return s[key] == "true"
}

// DefaultSystemSettings returns the values seeded on first initialization
// of a fresh backing store.
func DefaultSystemSettings() SystemSettings {
	return SystemSettings{
		SettingSuperadminExists:    "false",
		SettingDemoAccountsEnabled: "true",
	}
}

// FormatBool renders a boolean in the settings table's string encoding.
func FormatBool(v bool) string {
	if v {
		return "true"
	}

	return "false"
}
