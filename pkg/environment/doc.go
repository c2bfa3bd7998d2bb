// Package environment names the deployment environment (development, staging,
// production) and carries it through context.Context so the logger can stamp
// it on records and commands can refuse destructive work in production.
//
// # Usage
//
//	env := environment.Parse(os.Getenv("APP_ENV"))
//	ctx := environment.WithContext(context.Background(), env)
//
//	log := logger.New(
//	    logger.WithEnvironment(env.String(), "clientstate"),
//	    logger.WithContextExtractors(environment.LoggerExtractor()),
//	)
package environment
