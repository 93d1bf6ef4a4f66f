package seed

// SampleService is one entry of the demo catalog.
type SampleService struct {
	Name        string
	Description string
	Price       float64
}

var SampleServices = []SampleService{
	{"Frontend Web Development", "Modern responsive user interfaces with React, Vue.js or Angular, including UX/UI design and mobile optimisation.", 1200},
	{"Backend Web Development", "REST APIs and backend services with authentication, security and documentation.", 1500},
	{"Fullstack Development", "End-to-end web applications from frontend to backend, including database, APIs and deployment.", 2500},
	{"Mobile App Development", "Native iOS and Android applications, or hybrid apps with React Native or Flutter.", 2000},
	{"DevOps Consulting", "CI/CD pipelines, Docker containers, Kubernetes orchestration and deployment automation.", 800},
	{"Database Optimisation", "SQL query analysis and tuning, indexing, partitioning and performance improvements.", 600},
	{"E-commerce Development", "Online stores with shopping cart, payment gateways, inventory management and admin panel.", 3000},
	{"Cloud Migration", "Migration of applications and data to AWS, Azure or Google Cloud, including architecture and optimisation.", 1800},
	{"GraphQL API Development", "Scalable GraphQL APIs with real-time subscriptions and query optimisation.", 1000},
	{"Web Security Audit", "Security assessment of web applications, vulnerability discovery and remediation advice.", 900},
	{"Microservices Development", "Design and development of microservice systems, including inter-service communication and data management.", 2200},
	{"Systems Integration", "Integration of business systems through APIs, webhooks and middleware with real-time data sync.", 1400},
	{"Dashboard Development", "Interactive control panels and real-time reports with advanced data visualisation.", 750},
	{"Process Automation", "Scripts and tools that automate business processes, cutting turnaround time and manual errors.", 650},
	{"Chatbot Development", "Customer-service chatbots integrated with AI and natural language processing.", 1100},
}
