package main

import (
	"net/http"

	"github.com/graphql-go/graphql"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/gqlserve/gqlserve"
)

func newSchema() (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"hello": &graphql.Field{
				Type: graphql.String,
				Args: graphql.FieldConfigArgument{
					"name": &graphql.ArgumentConfig{
						Type: graphql.String,
					},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					name, _ := p.Args["name"].(string)
					if name == "" {
						gqlserve.Logger(p.Context).Warn("hello invoked without a name")
						name = "world"
					}
					return "Hello, " + name + "!", nil
				},
			},
		},
	})
	return graphql.NewSchema(graphql.SchemaConfig{Query: query})
}

func main() {
	addr := pflag.String("addr", ":8080", "the address to listen on")
	debug := pflag.Bool("debug", false, "expose error details and diagnostics in responses")
	manifest := pflag.String("persisted-query-manifest", "", "path to a JSON manifest of persisted queries (id to query text)")
	pflag.Parse()

	logger := logrus.StandardLogger()

	schema, err := newSchema()
	if err != nil {
		logger.WithError(err).Fatal("unable to build schema")
	}

	cfg := &gqlserve.ServerConfig{
		Schema: &schema,
		Logger: logger,
		Debug:  *debug,
	}
	if *manifest != "" {
		loader, err := gqlserve.NewManifestLoaderFromFile(*manifest)
		if err != nil {
			logger.WithError(err).Fatal("unable to load persisted query manifest")
		}
		logger.WithField("queries", loader.Len()).Info("loaded persisted query manifest")
		cfg.PersistedQueryLoader = loader
	}

	server, err := gqlserve.NewServer(cfg)
	if err != nil {
		logger.WithError(err).Fatal("unable to create server")
	}

	http.HandleFunc("/graphql", server.ServeGraphQL)
	logger.WithField("addr", *addr).Info("listening")
	logger.Fatal(http.ListenAndServe(*addr, nil))
}
