package sqlite

// Field limits mirror the input limits enforced at the tool boundary.
const schema = `
CREATE TABLE IF NOT EXISTS clients (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL CHECK(length(name) <= 200),
    contact_email TEXT NOT NULL CHECK(length(contact_email) <= 200),
    status TEXT NOT NULL CHECK(status IN ('Active', 'Inactive')),
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_clients_email ON clients(contact_email COLLATE NOCASE);
CREATE INDEX IF NOT EXISTS idx_clients_status_name ON clients(status, name);

CREATE TABLE IF NOT EXISTS contracts (
    id TEXT PRIMARY KEY,
    client_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    title TEXT NOT NULL CHECK(length(title) <= 200),
    description TEXT NOT NULL DEFAULT '' CHECK(length(description) <= 1000),
    type TEXT NOT NULL CHECK(type IN ('FixedPrice', 'TimeBased')),
    status TEXT NOT NULL CHECK(status IN ('Draft', 'Active', 'Completed', 'Archived')),
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL,
    FOREIGN KEY (client_id) REFERENCES clients(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_client_contracts ON contracts(client_id, position);

CREATE TABLE IF NOT EXISTS deliverables (
    id TEXT PRIMARY KEY,
    contract_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    title TEXT NOT NULL CHECK(length(title) <= 200),
    description TEXT NOT NULL DEFAULT '' CHECK(length(description) <= 1000),
    status TEXT NOT NULL CHECK(status IN ('Pending', 'InProgress', 'Completed', 'Cancelled')),
    due_date TIMESTAMP,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL,
    FOREIGN KEY (contract_id) REFERENCES contracts(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_contract_deliverables ON deliverables(contract_id, position);

-- Activity log. Rows are never updated or deleted.
CREATE TABLE IF NOT EXISTS activity_log (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    entity_kind TEXT NOT NULL CHECK(entity_kind IN ('Client', 'Contract', 'Deliverable')),
    entity_id TEXT NOT NULL,
    kind TEXT NOT NULL CHECK(kind IN ('Created', 'Updated', 'StatusChanged')),
    description TEXT NOT NULL CHECK(length(description) <= 500),
    occurred_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_activity_entity ON activity_log(entity_kind, entity_id, occurred_at);
CREATE INDEX IF NOT EXISTS idx_activity_occurred_at ON activity_log(occurred_at);

CREATE TRIGGER IF NOT EXISTS activity_log_no_update BEFORE UPDATE ON activity_log BEGIN
    SELECT RAISE(ABORT, 'activity_log is append-only');
END;

CREATE TRIGGER IF NOT EXISTS activity_log_no_delete BEFORE DELETE ON activity_log BEGIN
    SELECT RAISE(ABORT, 'activity_log is append-only');
END;
`
