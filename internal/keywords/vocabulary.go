package keywords

// stopWords filters common English and job-posting filler that add noise to keyword matching.
var stopWords = toSet(
	"a", "an", "and", "or", "the", "of", "to", "in", "on", "at", "by", "as", "is", "it", "be",
	"if", "we", "us", "you", "our", "your", "their", "they", "them", "for", "with", "from",
	"are", "was", "were", "been", "being", "have", "has", "had", "will", "would", "should",
	"could", "must", "may", "can", "this", "that", "these", "those", "which", "what", "who",
	"how", "why", "when", "where", "not", "but", "all", "also", "more", "than", "into", "its",
	"each", "new", "use", "using", "used", "well", "high", "good", "able", "get", "set", "such",
	"about", "other", "some", "any", "over", "per", "etc", "plus", "via", "within", "across",
	"work", "working", "team", "teams", "role", "job", "join", "company", "candidate", "candidates",
	"looking", "seeking", "experience", "experienced", "years", "year", "required", "requirements",
	"preferred", "strong", "knowledge", "skills", "skill", "ability", "including", "include",
	"includes", "responsibilities", "qualifications", "opportunity", "environment", "help",
	"ideal", "great", "excellent", "solid", "proven", "understanding", "familiarity", "familiar",
	"minimum", "least", "bonus", "nice", "have", "like", "make", "based", "do", "does", "our",
	"will", "who", "what", "etc", "e.g", "i.e", "up", "out", "own", "so", "no", "yes",
)

// knownPhrases are multi-word terms recognized as one keyword. Longest match wins.
var knownPhrases = [][]string{
	{"natural", "language", "processing"},
	{"test", "driven", "development"},
	{"amazon", "web", "services"},
	{"attention", "to", "detail"},
	{"machine", "learning"},
	{"deep", "learning"},
	{"data", "science"},
	{"data", "engineering"},
	{"data", "analysis"},
	{"data", "modeling"},
	{"computer", "science"},
	{"computer", "vision"},
	{"distributed", "systems"},
	{"system", "design"},
	{"project", "management"},
	{"product", "management"},
	{"stakeholder", "management"},
	{"time", "management"},
	{"unit", "testing"},
	{"integration", "testing"},
	{"version", "control"},
	{"google", "cloud"},
	{"problem", "solving"},
	{"go", "lang"},
}

// technicalTerms are single-token tools, languages and practices. Anything parsing
// recognizes as a skill spelling is technical too.
var technicalTerms = toSet(
	"python", "java", "rust", "ruby", "php", "scala", "kotlin", "swift", "elixir", "haskell",
	"docker", "terraform", "ansible", "jenkins", "git", "github", "gitlab", "linux", "bash",
	"kafka", "rabbitmq", "redis", "elasticsearch", "spark", "hadoop", "airflow", "snowflake",
	"bigquery", "dbt", "tableau", "looker", "excel", "figma", "jira", "pandas", "numpy",
	"tensorflow", "pytorch", "django", "flask", "spring", "rails", "angular", "svelte",
	"tailwind", "webpack", "microservices", "serverless", "lambda", "prometheus", "grafana",
	"datadog", "nginx", "oauth", "jwt", "agile", "scrum", "kanban", "devops", "mlops", "etl",
	"observability", "kubernetes", "helm", "istio", "cassandra", "dynamodb", "sqlite",
	"machine learning", "deep learning", "data science", "data engineering", "data analysis",
	"data modeling", "computer vision", "natural language processing", "distributed systems",
	"system design", "unit testing", "integration testing", "test driven development",
	"version control", "google cloud", "amazon web services",
)

// softSkills are interpersonal and working-style skills.
var softSkills = toSet(
	"communication", "leadership", "collaboration", "collaborative", "teamwork", "mentoring",
	"mentorship", "ownership", "adaptability", "creativity", "negotiation", "presentation",
	"empathy", "accountability", "initiative", "cross-functional", "problem solving",
	"attention to detail", "time management", "stakeholder management", "project management",
	"product management",
)

// credentialTerms mark degrees, certifications and licenses.
var credentialTerms = toSet(
	"bachelor", "bachelor's", "bachelors", "master", "master's", "masters", "phd", "mba",
	"degree", "diploma", "certification", "certifications", "certified", "certificate",
	"license", "licensed", "cpa", "pmp", "cissp", "computer science",
)

func toSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
