// Package environment names the deployment stage (development, staging,
// production) and carries it through request contexts.
//
//	env := environment.Parse(os.Getenv("APP_ENV"))
//	r.Use(environment.Middleware(env))
//
// Handlers read it back with FromContext; the logger picks its defaults from it.
package environment
