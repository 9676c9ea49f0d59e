// Package dinerec embeds the restaurant recommender in a Go program.
//
// # Preprocess once
//
//	sum, _ := dinerec.Preprocess(ctx, "swiggy.csv", "artifacts")
//	fmt.Println(sum.Rows, sum.Features)
//
// # Query many times
//
//	client, _ := dinerec.Open(ctx, "artifacts",
//	    dinerec.WithLogger(slog.Default()),
//	    dinerec.WithPrometheus(prometheus.DefaultRegisterer),
//	)
//	defer client.Close()
//
//	recs, _ := client.Recommend(ctx, dinerec.Query{
//	    City:      "Abohar",
//	    Cuisines:  []string{"Pizzas", "Fast Food"},
//	    MinRating: 4.0,
//	    MaxCost:   300,
//	})
//
// A Client is safe for concurrent use. Results are ranked by cosine similarity
// between a query row and each restaurant's feature row, best first.
package dinerec
