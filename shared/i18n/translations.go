package i18n

import "github.com/dfryer1193/portfolio/blog/domain"

type Nav struct {
	Home     string `json:"home"`
	CV       string `json:"cv"`
	Blog     string `json:"blog"`
	Contact  string `json:"contact"`
	Schedule string `json:"schedule"`
}

type Card struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ExpertiseCards struct {
	Cloud    Card `json:"cloud"`
	DevOps   Card `json:"devops"`
	Security Card `json:"security"`
}

type Home struct {
	Title          string         `json:"title"`
	Subtitle       string         `json:"subtitle"`
	Description    string         `json:"description"`
	GitHub         string         `json:"github"`
	LinkedIn       string         `json:"linkedin"`
	Expertise      string         `json:"expertise"`
	CVCard         Card           `json:"cvCard"`
	BlogCard       Card           `json:"blogCard"`
	ContactCard    Card           `json:"contactCard"`
	ExpertiseCards ExpertiseCards `json:"expertiseCards"`
}

type CV struct {
	Title      string `json:"title"`
	Download   string `json:"download"`
	Experience string `json:"experience"`
	Skills     string `json:"skills"`
	Education  string `json:"education"`
	Additional string `json:"additional"`
	Current    string `json:"current"`
	Graduated  string `json:"graduated"`
}

type Blog struct {
	Title              string `json:"title"`
	Subtitle           string `json:"subtitle"`
	ReadTime           string `json:"readTime"`
	NoPostsYet         string `json:"noPostsYet"`
	RegularUpdates     string `json:"regularUpdates"`
	RegularUpdatesDesc string `json:"regularUpdatesDesc"`
}

type Contact struct {
	Title          string `json:"title"`
	Subtitle       string `json:"subtitle"`
	GetInTouch     string `json:"getInTouch"`
	GetInTouchDesc string `json:"getInTouchDesc"`
}

type Footer struct {
	Rights string `json:"rights"`
}

// Strings is the full set of UI strings for one locale. Every locale carries the same shape.
type Strings struct {
	Nav     Nav     `json:"nav"`
	Home    Home    `json:"home"`
	CV      CV      `json:"cv"`
	Blog    Blog    `json:"blog"`
	Contact Contact `json:"contact"`
	Footer  Footer  `json:"footer"`
}

// Catalog holds the UI strings of every supported locale.
type Catalog map[domain.Locale]Strings

// For returns the strings for locale, or the default locale's strings when it has none.
func (c Catalog) For(locale domain.Locale) Strings {
	if s, ok := c[locale]; ok {
		return s
	}
	return c[domain.DefaultLocale]
}

// DefaultCatalog returns the built-in English and Portuguese tables.
func DefaultCatalog() Catalog {
	return Catalog{
		domain.LocaleEN: english,
		domain.LocalePT: portuguese,
	}
}

var english = Strings{
	Nav: Nav{
		Home:     "Home",
		CV:       "Resume",
		Blog:     "Blog",
		Contact:  "Contact",
		Schedule: "Schedule",
	},
	Home: Home{
		Title:       "Robson Alves",
		Subtitle:    "DevOps Engineer | SRE | Cloud Architect",
		Description: "Specialist in cloud infrastructure, automation, and scalable systems development. Passionate about solving complex problems with simple solutions.",
		GitHub:      "GitHub",
		LinkedIn:    "LinkedIn",
		Expertise:   "Expertise",
		CVCard:      Card{Title: "Resume", Description: "View my professional experience, skills, and certifications."},
		BlogCard:    Card{Title: "Blog", Description: "Articles about tech, DevOps, cloud, and development."},
		ContactCard: Card{Title: "Contact", Description: "Get in touch with me through social media."},
		ExpertiseCards: ExpertiseCards{
			Cloud:    Card{Title: "Cloud Platforms", Description: "AWS, Azure, OCI"},
			DevOps:   Card{Title: "DevOps & SRE", Description: "K8s, Docker, Terraform, GitOps"},
			Security: Card{Title: "Security", Description: "AWS WAF, Hardening, Compliance"},
		},
	},
	CV: CV{
		Title:      "Resume",
		Download:   "Download Resume (PDF)",
		Experience: "Professional Experience",
		Skills:     "Technical Skills",
		Education:  "Education",
		Additional: "Additional Activities",
		Current:    "Current",
		Graduated:  "Graduated",
	},
	Blog: Blog{
		Title:              "Technical Blog",
		Subtitle:           "Thoughts on DevOps, Cloud Architecture, and Infrastructure",
		ReadTime:           "read",
		NoPostsYet:         "No posts published yet. Coming soon!",
		RegularUpdates:     "Regular Updates",
		RegularUpdatesDesc: "New articles published regularly covering the latest in DevOps, Cloud, and Infrastructure topics.",
	},
	Contact: Contact{
		Title:          "Let's Connect",
		Subtitle:       "Always open to discuss technology, DevOps, cloud, and collaboration opportunities.",
		GetInTouch:     "Get in Touch",
		GetInTouchDesc: "Prefer to send a direct message? Use LinkedIn's contact form or email me at",
	},
	Footer: Footer{
		Rights: "All rights reserved.",
	},
}

var portuguese = Strings{
	Nav: Nav{
		Home:     "Início",
		CV:       "Currículo",
		Blog:     "Blog",
		Contact:  "Contato",
		Schedule: "Agendar",
	},
	Home: Home{
		Title:       "Robson Alves",
		Subtitle:    "Engenheiro DevOps | SRE | Arquiteto Cloud",
		Description: "Especialista em infraestrutura cloud, automação e desenvolvimento de sistemas escaláveis. Apaixonado por resolver problemas complexos com soluções simples.",
		GitHub:      "GitHub",
		LinkedIn:    "LinkedIn",
		Expertise:   "Especialidades",
		CVCard:      Card{Title: "Currículo", Description: "Veja minha experiência profissional, habilidades e certificações."},
		BlogCard:    Card{Title: "Blog", Description: "Artigos sobre tecnologia, DevOps, cloud e desenvolvimento."},
		ContactCard: Card{Title: "Contato", Description: "Entre em contato através das redes sociais."},
		ExpertiseCards: ExpertiseCards{
			Cloud:    Card{Title: "Plataformas Cloud", Description: "AWS, Azure, OCI"},
			DevOps:   Card{Title: "DevOps & SRE", Description: "K8s, Docker, Terraform, GitOps"},
			Security: Card{Title: "Segurança", Description: "AWS WAF, Hardening, Compliance"},
		},
	},
	CV: CV{
		Title:      "Curriculum Vitae",
		Download:   "Baixar Versão PDF",
		Experience: "Experiência Profissional",
		Skills:     "Habilidades Técnicas",
		Education:  "Educação",
		Additional: "Atividades Adicionais",
		Current:    "Atual",
		Graduated:  "Formado",
	},
	Blog: Blog{
		Title:              "Blog Técnico",
		Subtitle:           "Reflexões sobre DevOps, Arquitetura Cloud e Infraestrutura",
		ReadTime:           "leitura",
		NoPostsYet:         "Nenhum post publicado ainda. Em breve!",
		RegularUpdates:     "Atualizações Regulares",
		RegularUpdatesDesc: "Novos artigos publicados regularmente sobre os tópicos mais recentes em DevOps, Cloud e Infraestrutura.",
	},
	Contact: Contact{
		Title:          "Vamos Conversar",
		Subtitle:       "Sempre aberto para discutir tecnologia, DevOps, cloud e oportunidades de colaboração.",
		GetInTouch:     "Entre em Contato",
		GetInTouchDesc: "Prefere enviar uma mensagem direta? Use o formulário de contato do LinkedIn ou envie um email para",
	},
	Footer: Footer{
		Rights: "Todos os direitos reservados.",
	},
}
