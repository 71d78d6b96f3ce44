// Package careercompass embeds the career dataset search in a Go program,
// without running the HTTP server.
//
// The dataset is read once when the client is created and never written.
//
//	client, _ := careercompass.New(ctx, careercompass.WithCSV("data/ai_career_compass_dataset.csv"))
//	res, _ := client.Search(ctx, careercompass.Query{Text: "python", Domain: "health"})
//	for _, c := range res.Items {
//	    fmt.Println(c.Role(), c.Get("required_skills"))
//	}
//
// Role prediction needs an Embedder:
//
//	client, _ := careercompass.New(ctx,
//	    careercompass.WithCSV(path),
//	    careercompass.WithEmbedder(myEmbedder),
//	)
//	pred, _ := client.Predict(ctx, "I like statistics and Python")
package careercompass
