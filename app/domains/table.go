package domains

// defaultMappings maps technology keywords found in a question to the
// official documentation domains the web search should be restricted to.
// Order matters: matched domains are unioned in table order, so the table
// is a slice rather than a map. Korean aliases sit next to their English
// keywords because questions arrive in both languages.
var defaultMappings = []Mapping{
	// Containers / infrastructure
	{Keyword: "docker", Domains: []string{"docs.docker.com"}},
	{Keyword: "도커", Domains: []string{"docs.docker.com"}},
	{Keyword: "kubernetes", Domains: []string{"kubernetes.io"}},
	{Keyword: "쿠버네티스", Domains: []string{"kubernetes.io"}},
	{Keyword: "k8s", Domains: []string{"kubernetes.io"}},
	{Keyword: "helm", Domains: []string{"helm.sh"}},
	{Keyword: "헬름", Domains: []string{"helm.sh"}},
	{Keyword: "terraform", Domains: []string{"developer.hashicorp.com/terraform"}},
	{Keyword: "테라폼", Domains: []string{"developer.hashicorp.com/terraform"}},
	{Keyword: "ansible", Domains: []string{"docs.ansible.com"}},
	{Keyword: "앤서블", Domains: []string{"docs.ansible.com"}},
	{Keyword: "nginx", Domains: []string{"nginx.org/en/docs"}},
	{Keyword: "엔진엑스", Domains: []string{"nginx.org/en/docs"}},
	{Keyword: "apache", Domains: []string{"httpd.apache.org/docs"}},
	{Keyword: "아파치", Domains: []string{"httpd.apache.org/docs"}},

	// Cloud
	{Keyword: "aws", Domains: []string{"docs.aws.amazon.com"}},
	{Keyword: "gcp", Domains: []string{"cloud.google.com/docs"}},
	{Keyword: "azure", Domains: []string{"learn.microsoft.com/azure"}},

	// Languages
	{Keyword: "python", Domains: []string{"docs.python.org"}},
	{Keyword: "파이썬", Domains: []string{"docs.python.org"}},
	{Keyword: "javascript", Domains: []string{"developer.mozilla.org"}},
	{Keyword: "자바스크립트", Domains: []string{"developer.mozilla.org"}},
	{Keyword: "typescript", Domains: []string{"typescriptlang.org/docs"}},
	{Keyword: "타입스크립트", Domains: []string{"typescriptlang.org/docs"}},
	{Keyword: "java", Domains: []string{"docs.oracle.com/en/java"}},
	{Keyword: "자바", Domains: []string{"docs.oracle.com/en/java"}},
	{Keyword: "go", Domains: []string{"go.dev/doc"}},
	{Keyword: "golang", Domains: []string{"go.dev/doc"}},
	{Keyword: "고랭", Domains: []string{"go.dev/doc"}},
	{Keyword: "rust", Domains: []string{"doc.rust-lang.org"}},
	{Keyword: "러스트", Domains: []string{"doc.rust-lang.org"}},
	{Keyword: "c++", Domains: []string{"en.cppreference.com"}},
	{Keyword: "cpp", Domains: []string{"en.cppreference.com"}},

	// Frameworks - Python
	{Keyword: "django", Domains: []string{"docs.djangoproject.com"}},
	{Keyword: "장고", Domains: []string{"docs.djangoproject.com"}},
	{Keyword: "flask", Domains: []string{"flask.palletsprojects.com"}},
	{Keyword: "플라스크", Domains: []string{"flask.palletsprojects.com"}},
	{Keyword: "fastapi", Domains: []string{"fastapi.tiangolo.com"}},
	{Keyword: "celery", Domains: []string{"docs.celeryq.dev"}},
	{Keyword: "셀러리", Domains: []string{"docs.celeryq.dev"}},

	// Frameworks - JavaScript
	{Keyword: "react", Domains: []string{"react.dev"}},
	{Keyword: "리액트", Domains: []string{"react.dev"}},
	{Keyword: "vue", Domains: []string{"vuejs.org"}},
	{Keyword: "뷰", Domains: []string{"vuejs.org"}},
	{Keyword: "angular", Domains: []string{"angular.io/docs"}},
	{Keyword: "앵귤러", Domains: []string{"angular.io/docs"}},
	{Keyword: "next", Domains: []string{"nextjs.org/docs"}},
	{Keyword: "nextjs", Domains: []string{"nextjs.org/docs"}},
	{Keyword: "넥스트", Domains: []string{"nextjs.org/docs"}},
	{Keyword: "nuxt", Domains: []string{"nuxt.com/docs"}},
	{Keyword: "넉스트", Domains: []string{"nuxt.com/docs"}},
	{Keyword: "node", Domains: []string{"nodejs.org/docs"}},
	{Keyword: "nodejs", Domains: []string{"nodejs.org/docs"}},
	{Keyword: "노드", Domains: []string{"nodejs.org/docs"}},
	{Keyword: "express", Domains: []string{"expressjs.com"}},
	{Keyword: "익스프레스", Domains: []string{"expressjs.com"}},

	// Frameworks - Java
	{Keyword: "spring", Domains: []string{"docs.spring.io"}},
	{Keyword: "스프링", Domains: []string{"docs.spring.io"}},
	{Keyword: "springboot", Domains: []string{"docs.spring.io/spring-boot"}},
	{Keyword: "스프링부트", Domains: []string{"docs.spring.io/spring-boot"}},

	// Databases
	{Keyword: "postgresql", Domains: []string{"postgresql.org/docs"}},
	{Keyword: "postgres", Domains: []string{"postgresql.org/docs"}},
	{Keyword: "포스트그레스", Domains: []string{"postgresql.org/docs"}},
	{Keyword: "mysql", Domains: []string{"dev.mysql.com/doc"}},
	{Keyword: "마이에스큐엘", Domains: []string{"dev.mysql.com/doc"}},
	{Keyword: "mongodb", Domains: []string{"mongodb.com/docs"}},
	{Keyword: "몽고디비", Domains: []string{"mongodb.com/docs"}},
	{Keyword: "몽고", Domains: []string{"mongodb.com/docs"}},
	{Keyword: "redis", Domains: []string{"redis.io/docs"}},
	{Keyword: "레디스", Domains: []string{"redis.io/docs"}},
	{Keyword: "elasticsearch", Domains: []string{"elastic.co/guide"}},
	{Keyword: "엘라스틱서치", Domains: []string{"elastic.co/guide"}},

	// Message queues
	{Keyword: "kafka", Domains: []string{"kafka.apache.org/documentation"}},
	{Keyword: "카프카", Domains: []string{"kafka.apache.org/documentation"}},
	{Keyword: "rabbitmq", Domains: []string{"rabbitmq.com/docs"}},
	{Keyword: "래빗엠큐", Domains: []string{"rabbitmq.com/docs"}},

	// Version control / CI/CD
	{Keyword: "git", Domains: []string{"git-scm.com/doc"}},
	{Keyword: "깃", Domains: []string{"git-scm.com/doc"}},
	{Keyword: "github", Domains: []string{"docs.github.com"}},
	{Keyword: "깃허브", Domains: []string{"docs.github.com"}},
	{Keyword: "깃헙", Domains: []string{"docs.github.com"}},
	{Keyword: "gitlab", Domains: []string{"docs.gitlab.com"}},
	{Keyword: "깃랩", Domains: []string{"docs.gitlab.com"}},

	// Misc
	{Keyword: "graphql", Domains: []string{"graphql.org/learn"}},
	{Keyword: "그래프큐엘", Domains: []string{"graphql.org/learn"}},
	{Keyword: "linux", Domains: []string{"man7.org", "kernel.org/doc"}},
	{Keyword: "리눅스", Domains: []string{"man7.org", "kernel.org/doc"}},
	{Keyword: "bash", Domains: []string{"gnu.org/software/bash/manual"}},
	{Keyword: "배쉬", Domains: []string{"gnu.org/software/bash/manual"}},
	{Keyword: "shell", Domains: []string{"gnu.org/software/bash/manual"}},
	{Keyword: "쉘", Domains: []string{"gnu.org/software/bash/manual"}},
}

// defaultFallbackTags are the common terms scanned for when LLM tag
// extraction fails.
var defaultFallbackTags = []string{
	"docker", "python", "javascript", "react", "django",
	"api", "database", "network", "kubernetes", "git",
}
