package catalog

import "learning-advisor/internal/domain"

// DefaultFile es el catálogo embebido que se usa sin CATALOG_PATH.
func DefaultFile() File {
	return File{
		FallbackPath:     DefaultFallbackPath,
		FallbackProjects: defaultFallbackProjects,
		FallbackCareers:  defaultFallbackCareers,
		Domains: []Domain{
			{
				Name: "AI",
				Path: "Start with Python -> Math for ML -> Basic ML Algorithms -> Deep Learning -> NLP/CV",
				Courses: []domain.Course{
					{Title: "Machine Learning by Andrew Ng", Platform: "Coursera", Level: "Beginner"},
					{Title: "Deep Learning Specialization", Platform: "Coursera", Level: "Intermediate"},
					{Title: "Fast.ai Practical Deep Learning", Platform: "Fast.ai", Level: "Advanced"},
				},
				Projects: []string{
					"Build a Chatbot using Rasa",
					"Image Classification with CNN",
					"Predicting House Prices using Regression",
				},
				Careers: []string{"Machine Learning Engineer", "Data Scientist", "AI Research Scientist"},
			},
			{
				Name: "Web Development",
				Path: "HTML/CSS -> JavaScript -> React/Vue -> Node.js -> Databases -> DevOps",
				Courses: []domain.Course{
					{Title: "The Web Developer Bootcamp", Platform: "Udemy", Level: "Beginner"},
					{Title: "Full Stack Open", Platform: "University of Helsinki", Level: "Intermediate"},
					{Title: "Advanced React", Platform: "Frontend Masters", Level: "Advanced"},
				},
				Projects: []string{
					"Personal Portfolio Website",
					"E-commerce Store",
					"Task Management App",
				},
				Careers: []string{"Frontend Developer", "Backend Developer", "Full Stack Engineer"},
			},
			{
				Name: "Cybersecurity",
				Path: "Networking Basics -> Linux -> Scripting (Python/Bash) -> Ethical Hacking -> Cloud Security",
				Courses: []domain.Course{
					{Title: "Introduction to Cyber Security", Platform: "FutureLearn", Level: "Beginner"},
					{Title: "Cybersecurity Specialization", Platform: "Coursera", Level: "Intermediate"},
				},
				Projects: []string{
					"Keylogger in Python",
					"Network Packet Sniffer",
					"Password Strength Checker",
				},
				Careers: []string{"Security Analyst", "Penetration Tester", "Security Engineer"},
			},
		},
	}
}

// Default construye el catálogo embebido.
func Default() *Catalog {
	c, err := New(DefaultFile())
	if err != nil {
		// El catálogo embebido es válido por construcción.
		panic(err)
	}
	return c
}
