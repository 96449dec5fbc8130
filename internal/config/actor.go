package config

// ResolveActor returns the actor name recorded on journal entries,
// following priority order:
// 1. flagValue (--actor flag) if non-empty
// 2. $AJAR_ACTOR environment variable if set
// 3. configured actor from a config file
// 4. $USER environment variable if set
// 5. "unknown" as fallback
func ResolveActor(flagValue, configured string, env []string) string {
	if flagValue != "" {
		return flagValue
	}
	if actor := lookupEnv(env, EnvActor); actor != "" {
		return actor
	}
	if configured != "" {
		return configured
	}
	if user := lookupEnv(env, "USER"); user != "" {
		return user
	}
	return "unknown"
}
