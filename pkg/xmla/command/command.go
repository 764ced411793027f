package command

import "github.com/getmockd/xmlad/pkg/xmla/enum"

// Kind identifies a command variant by its XMLA element name.
type Kind string

// Command kinds.
const (
	KindStatement           Kind = "Statement"
	KindCancel              Kind = "Cancel"
	KindClearCache          Kind = "ClearCache"
	KindCreate              Kind = "Create"
	KindAlter               Kind = "Alter"
	KindDelete              Kind = "Delete"
	KindDrop                Kind = "Drop"
	KindProcess             Kind = "Process"
	KindInsert              Kind = "Insert"
	KindUpdate              Kind = "Update"
	KindMergePartitions     Kind = "MergePartitions"
	KindBackup              Kind = "Backup"
	KindRestore             Kind = "Restore"
	KindSynchronize         Kind = "Synchronize"
	KindImageLoad           Kind = "ImageLoad"
	KindImageSave           Kind = "ImageSave"
	KindLock                Kind = "Lock"
	KindUnlock              Kind = "Unlock"
	KindSetAuthContext      Kind = "SetAuthContext"
	KindSubscribe           Kind = "Subscribe"
	KindUnsubscribe         Kind = "Unsubscribe"
	KindDBCC                Kind = "DBCC"
	KindBeginTransaction    Kind = "BeginTransaction"
	KindCommitTransaction   Kind = "CommitTransaction"
	KindRollbackTransaction Kind = "RollbackTransaction"
)

// Command is the closed set of parsed Execute commands. Switch on the
// concrete type or on Kind.
type Command interface {
	Kind() Kind
	command()
}

// Statement carries query text for the execution engine.
type Statement struct {
	Text string `yaml:"text"`
}

// Cancel stops a running command, session or connection.
type Cancel struct {
	ConnectionID     *int64  `yaml:"connectionID,omitempty"`
	SessionID        *string `yaml:"sessionID,omitempty"`
	SPID             *int64  `yaml:"spid,omitempty"`
	CancelAssociated *bool   `yaml:"cancelAssociated,omitempty"`
}

// ClearCache drops cached data for an object.
type ClearCache struct {
	Object *ObjectReference `yaml:"object,omitempty"`
}

// Create defines a new major object.
type Create struct {
	ParentObject     *ObjectReference  `yaml:"parentObject,omitempty"`
	ObjectDefinition *ObjectDefinition `yaml:"objectDefinition"`
	Scope            *enum.Value       `yaml:"scope,omitempty"`
	AllowOverwrite   *bool             `yaml:"allowOverwrite,omitempty"`
}

// Alter changes an existing major object.
type Alter struct {
	Object           *ObjectReference  `yaml:"object"`
	ObjectDefinition *ObjectDefinition `yaml:"objectDefinition"`
	Scope            *enum.Value       `yaml:"scope,omitempty"`
	AllowCreate      *bool             `yaml:"allowCreate,omitempty"`
	ObjectExpansion  *enum.Value       `yaml:"objectExpansion,omitempty"`
}

// Delete removes dimension members selected by Where.
type Delete struct {
	Object *ObjectReference `yaml:"object"`
	Where  *Where           `yaml:"where,omitempty"`
}

// Drop removes dimension members, optionally with descendants.
type Drop struct {
	Object                *ObjectReference `yaml:"object"`
	DeleteWithDescendants *bool            `yaml:"deleteWithDescendants,omitempty"`
	Where                 *Where           `yaml:"where,omitempty"`
}

// Process loads data into an object.
type Process struct {
	Object                 *ObjectReference    `yaml:"object"`
	Type                   *enum.Value         `yaml:"type,omitempty"`
	DataSource             *DataSource         `yaml:"dataSource,omitempty"`
	DataSourceView         *string             `yaml:"dataSourceView,omitempty"`
	ErrorConfiguration     *ErrorConfiguration `yaml:"errorConfiguration,omitempty"`
	WriteBackTableCreation *enum.Value         `yaml:"writeBackTableCreation,omitempty"`
}

// Insert adds dimension members.
type Insert struct {
	Object     *ObjectReference `yaml:"object"`
	Attributes []Attribute      `yaml:"attributes,omitempty"`
}

// Update changes dimension members selected by Where.
type Update struct {
	Object              *ObjectReference `yaml:"object"`
	Attributes          []Attribute      `yaml:"attributes,omitempty"`
	Where               *Where           `yaml:"where,omitempty"`
	MoveWithDescendants *bool            `yaml:"moveWithDescendants,omitempty"`
}

// MergePartitions merges source partitions into a target partition.
type MergePartitions struct {
	Sources []*ObjectReference `yaml:"sources,omitempty"`
	Target  *ObjectReference   `yaml:"target"`
}

// Backup writes a database to a backup file.
type Backup struct {
	Object                 *ObjectReference `yaml:"object"`
	File                   string           `yaml:"file"`
	Security               *enum.Value      `yaml:"security,omitempty"`
	ApplyCompression       *bool            `yaml:"applyCompression,omitempty"`
	AllowOverwrite         *bool            `yaml:"allowOverwrite,omitempty"`
	Password               *string          `yaml:"password,omitempty"`
	BackupRemotePartitions *bool            `yaml:"backupRemotePartitions,omitempty"`
	Locations              []Location       `yaml:"locations,omitempty"`
}

// Restore reads a database from a backup file.
type Restore struct {
	File              string      `yaml:"file"`
	DatabaseName      *string     `yaml:"databaseName,omitempty"`
	DatabaseID        *string     `yaml:"databaseID,omitempty"`
	AllowOverwrite    *bool       `yaml:"allowOverwrite,omitempty"`
	Password          *string     `yaml:"password,omitempty"`
	DbStorageLocation *string     `yaml:"dbStorageLocation,omitempty"`
	ReadWriteMode     *enum.Value `yaml:"readWriteMode,omitempty"`
	Security          *enum.Value `yaml:"security,omitempty"`
	Locations         []Location  `yaml:"locations,omitempty"`
}

// Synchronize copies a database from another server.
type Synchronize struct {
	Source              SynchronizeSource `yaml:"source"`
	SynchronizeSecurity *enum.Value       `yaml:"synchronizeSecurity,omitempty"`
	ApplyCompression    *bool             `yaml:"applyCompression,omitempty"`
	Locations           []Location        `yaml:"locations,omitempty"`
}

// ImageLoad attaches a database image.
type ImageLoad struct {
	ImagePath      *string `yaml:"imagePath,omitempty"`
	ImageURL       *string `yaml:"imageURL,omitempty"`
	ImageUniqueID  *string `yaml:"imageUniqueID,omitempty"`
	ImageVersionID *string `yaml:"imageVersionID,omitempty"`
	Password       *string `yaml:"password,omitempty"`
	DatabaseName   *string `yaml:"databaseName,omitempty"`
	DatabaseID     *string `yaml:"databaseID,omitempty"`
	Data           *string `yaml:"data,omitempty"`
}

// ImageSave writes a database image.
type ImageSave struct {
	Object           *ObjectReference `yaml:"object,omitempty"`
	Path             *string          `yaml:"path,omitempty"`
	ImageURL         *string          `yaml:"imageURL,omitempty"`
	ImageUniqueID    *string          `yaml:"imageUniqueID,omitempty"`
	ImageVersionID   *string          `yaml:"imageVersionID,omitempty"`
	Password         *string          `yaml:"password,omitempty"`
	CreateNewVersion *bool            `yaml:"createNewVersion,omitempty"`
}

// Lock takes a lock on an object within the current transaction.
type Lock struct {
	ID     string           `yaml:"id"`
	Object *ObjectReference `yaml:"object,omitempty"`
	Mode   *LockMode        `yaml:"mode,omitempty"`
}

// Unlock releases a lock taken by Lock.
type Unlock struct {
	ID string `yaml:"id"`
}

// SetAuthContext switches the security context of the session.
type SetAuthContext struct {
	Token *string `yaml:"token,omitempty"`
}

// Subscribe registers for notifications about an object.
type Subscribe struct {
	Object *ObjectReference `yaml:"object,omitempty"`
}

// Unsubscribe cancels a Subscribe.
type Unsubscribe struct {
	Object *ObjectReference `yaml:"object,omitempty"`
}

// DBCC runs a consistency check on an object.
type DBCC struct {
	Object *ObjectReference `yaml:"object,omitempty"`
}

// BeginTransaction starts an explicit transaction in the session.
type BeginTransaction struct{}

// CommitTransaction commits the session's transaction.
type CommitTransaction struct{}

// RollbackTransaction rolls back the session's transaction.
type RollbackTransaction struct{}

func (*Statement) Kind() Kind           { return KindStatement }
func (*Cancel) Kind() Kind              { return KindCancel }
func (*ClearCache) Kind() Kind          { return KindClearCache }
func (*Create) Kind() Kind              { return KindCreate }
func (*Alter) Kind() Kind               { return KindAlter }
func (*Delete) Kind() Kind              { return KindDelete }
func (*Drop) Kind() Kind                { return KindDrop }
func (*Process) Kind() Kind             { return KindProcess }
func (*Insert) Kind() Kind              { return KindInsert }
func (*Update) Kind() Kind              { return KindUpdate }
func (*MergePartitions) Kind() Kind     { return KindMergePartitions }
func (*Backup) Kind() Kind              { return KindBackup }
func (*Restore) Kind() Kind             { return KindRestore }
func (*Synchronize) Kind() Kind         { return KindSynchronize }
func (*ImageLoad) Kind() Kind           { return KindImageLoad }
func (*ImageSave) Kind() Kind           { return KindImageSave }
func (*Lock) Kind() Kind                { return KindLock }
func (*Unlock) Kind() Kind              { return KindUnlock }
func (*SetAuthContext) Kind() Kind      { return KindSetAuthContext }
func (*Subscribe) Kind() Kind           { return KindSubscribe }
func (*Unsubscribe) Kind() Kind         { return KindUnsubscribe }
func (*DBCC) Kind() Kind                { return KindDBCC }
func (*BeginTransaction) Kind() Kind    { return KindBeginTransaction }
func (*CommitTransaction) Kind() Kind   { return KindCommitTransaction }
func (*RollbackTransaction) Kind() Kind { return KindRollbackTransaction }

func (*Statement) command()           {}
func (*Cancel) command()              {}
func (*ClearCache) command()          {}
func (*Create) command()              {}
func (*Alter) command()               {}
func (*Delete) command()              {}
func (*Drop) command()                {}
func (*Process) command()             {}
func (*Insert) command()              {}
func (*Update) command()              {}
func (*MergePartitions) command()     {}
func (*Backup) command()              {}
func (*Restore) command()             {}
func (*Synchronize) command()         {}
func (*ImageLoad) command()           {}
func (*ImageSave) command()           {}
func (*Lock) command()                {}
func (*Unlock) command()              {}
func (*SetAuthContext) command()      {}
func (*Subscribe) command()           {}
func (*Unsubscribe) command()         {}
func (*DBCC) command()                {}
func (*BeginTransaction) command()    {}
func (*CommitTransaction) command()   {}
func (*RollbackTransaction) command() {}
