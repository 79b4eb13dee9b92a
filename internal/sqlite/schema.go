// Schema DDL for the pipeboard relational backend. All statements are
// IF NOT EXISTS so initialization is safe to run on every startup; schema
// changes after a release ship as additive column patches (see patch.go),
// never as destructive rebuilds.
package sqlite

const (
	createPipelines = `CREATE TABLE IF NOT EXISTS pipelines (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    created_at TEXT NOT NULL
);`

	createLeads = `CREATE TABLE IF NOT EXISTS leads (
    id TEXT PRIMARY KEY,
    pipeline_id TEXT NOT NULL,
    name TEXT NOT NULL,
    contact_name TEXT DEFAULT '',
    job_title TEXT DEFAULT '',
    email TEXT DEFAULT '',
    phone TEXT DEFAULT '',
    mobile TEXT DEFAULT '',
    company TEXT DEFAULT '',
    tax_id TEXT DEFAULT '',
    address TEXT DEFAULT '',
    city TEXT DEFAULT '',
    postal_code TEXT DEFAULT '',
    country TEXT DEFAULT '',
    stage TEXT DEFAULT '',
    value REAL DEFAULT 0,
    notes TEXT DEFAULT '',
    next_action TEXT DEFAULT '',
    next_action_date TEXT DEFAULT '',
    next_action_time TEXT DEFAULT '',
    source TEXT DEFAULT '',
    website TEXT DEFAULT '',
    social_link TEXT DEFAULT '',
    offer_link TEXT DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    FOREIGN KEY (pipeline_id) REFERENCES pipelines(id) ON DELETE CASCADE
);`

	createStages = `CREATE TABLE IF NOT EXISTS stages (
    id TEXT PRIMARY KEY,
    pipeline_id TEXT NOT NULL,
    label TEXT NOT NULL,
    position INTEGER NOT NULL DEFAULT 0
);`

	createSettings = `CREATE TABLE IF NOT EXISTS settings (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);`

	createCustomActions = `CREATE TABLE IF NOT EXISTS custom_actions (
    id TEXT PRIMARY KEY,
    label TEXT NOT NULL,
    target TEXT NOT NULL
);`

	createEmailTemplates = `CREATE TABLE IF NOT EXISTS email_templates (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    subject TEXT DEFAULT '',
    body TEXT DEFAULT ''
);`

	createTeamMembers = `CREATE TABLE IF NOT EXISTS team_members (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT DEFAULT '',
    role TEXT DEFAULT ''
);`
)

// Secondary indexes keep list/filter/search over leads sub-linear as data
// grows.
const (
	idxLeadsPipeline   = `CREATE INDEX IF NOT EXISTS idx_leads_pipeline ON leads(pipeline_id);`
	idxLeadsStage      = `CREATE INDEX IF NOT EXISTS idx_leads_stage ON leads(stage);`
	idxLeadsNextAction = `CREATE INDEX IF NOT EXISTS idx_leads_next_action_date ON leads(next_action_date);`
	idxLeadsName       = `CREATE INDEX IF NOT EXISTS idx_leads_name ON leads(name);`
	idxLeadsEmail      = `CREATE INDEX IF NOT EXISTS idx_leads_email ON leads(email);`
	idxLeadsCompany    = `CREATE INDEX IF NOT EXISTS idx_leads_company ON leads(company);`
	idxLeadsCreatedAt  = `CREATE INDEX IF NOT EXISTS idx_leads_created_at ON leads(created_at);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createPipelines,
	createLeads,
	createStages,
	createSettings,
	createCustomActions,
	createEmailTemplates,
	createTeamMembers,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxLeadsPipeline,
	idxLeadsStage,
	idxLeadsNextAction,
	idxLeadsName,
	idxLeadsEmail,
	idxLeadsCompany,
	idxLeadsCreatedAt,
}
