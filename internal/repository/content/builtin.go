package content

// builtinSeed is the catalog the app ships with.
var builtinSeed = seed{
	Courses: []courseDTO{
		{
			ID: "1", Title: "Machine Learning Fundamentals",
			Description: "Learn the basics of ML algorithms and neural networks",
			Progress:    65, Duration: "8 weeks", Level: "Beginner",
		},
		{
			ID: "2", Title: "Deep Learning with PyTorch",
			Description: "Master deep learning using PyTorch framework",
			Progress:    30, Duration: "10 weeks", Level: "Intermediate",
		},
		{
			ID: "3", Title: "Natural Language Processing",
			Description: "Build NLP models and understand transformers",
			Progress:    80, Duration: "6 weeks", Level: "Advanced",
		},
		{
			ID: "4", Title: "Computer Vision",
			Description: "Image classification and object detection",
			Progress:    15, Duration: "8 weeks", Level: "Intermediate",
		},
	},
	Notes: []noteDTO{
		{
			ID: "1", Title: "Neural Network Architectures",
			Content: "Key concepts about CNNs, RNNs, and Transformers...",
			Tags:    []string{"deep-learning", "architecture"},
			Age:     "2h",
		},
		{
			ID: "2", Title: "Gradient Descent Optimization",
			Content: "Notes on SGD, Adam, and learning rate scheduling...",
			Tags:    []string{"optimization", "algorithms"},
			Age:     "24h",
		},
		{
			ID: "3", Title: "Transfer Learning Strategies",
			Content: "Fine-tuning pre-trained models for specific tasks...",
			Tags:    []string{"transfer-learning", "fine-tuning"},
			Age:     "72h",
		},
	},
	Stats: []statDTO{
		{Label: "Total Study Time", Value: "47.5h", Change: "+12%", Positive: true, Icon: "time-outline"},
		{Label: "Courses Completed", Value: "8", Change: "+2", Positive: true, Icon: "trophy-outline"},
		{Label: "Avg. Score", Value: "87%", Change: "+5%", Positive: true, Icon: "star-outline"},
		{Label: "Learning Streak", Value: "15 days", Change: "+3", Positive: true, Icon: "flame-outline"},
	},
	Weekly: []dayDTO{
		{Day: "Mon", Hours: 4.5},
		{Day: "Tue", Hours: 6.2},
		{Day: "Wed", Hours: 3.8},
		{Day: "Thu", Hours: 7.5},
		{Day: "Fri", Hours: 5.0},
		{Day: "Sat", Hours: 8.2},
		{Day: "Sun", Hours: 6.5},
	},
	Achievements: []achievementDTO{
		{Title: "Course Master", Description: "Completed 5 courses in one month", Icon: "trophy", Age: "48h"},
		{Title: "Streak Champion", Description: "Maintained 15-day learning streak", Icon: "flame", Age: "168h"},
	},
}
