// Package skills surfaces known technical skills mentioned in resume text.
package skills

// DefaultVocabulary is the built-in skill list, grouped by area.
var DefaultVocabulary = []string{
	// Programming languages
	"Python", "Java", "C++", "JavaScript", "TypeScript", "HTML", "CSS", "SQL", "NoSQL",
	"R", "Go", "Swift", "Kotlin", "PHP", "Ruby", "Matlab",

	// Data science and ML
	"Machine Learning", "Deep Learning", "Pandas", "NumPy", "Scikit-learn",
	"TensorFlow", "Keras", "PyTorch", "NLP", "Natural Language Processing",
	"Computer Vision", "Data Analysis", "Statistics", "Power BI", "Tableau",

	// Web
	"React", "Angular", "Vue", "Django", "Flask", "FastAPI", "Node.js",
	"Express", "Spring Boot", "ASP.NET", "Bootstrap", "Tailwind",

	// Cloud and DevOps
	"AWS", "Azure", "Google Cloud", "Docker", "Kubernetes", "Jenkins",
	"Git", "GitHub", "Linux", "CI/CD", "Terraform",

	// Databases
	"MySQL", "PostgreSQL", "MongoDB", "Redis", "Oracle", "SQLite",
}
