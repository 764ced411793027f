package command

import "github.com/getmockd/xmlad/pkg/xmla/enum"

// ProcessTypes are the values of Process/Type.
var ProcessTypes = enum.NewSet("ProcessType",
	enum.Value{Ordinal: 0, Name: "ProcessDefault", Description: "Detects the process state of the object and performs the processing needed to bring it to a fully processed state."},
	enum.Value{Ordinal: 1, Name: "ProcessFull", Description: "Processes the object and all the objects it contains."},
	enum.Value{Ordinal: 2, Name: "ProcessUpdate", Description: "Forces a re-read of data and an update of dimension attributes."},
	enum.Value{Ordinal: 3, Name: "ProcessIndexes", Description: "Creates or rebuilds indexes and aggregations for all processed partitions."},
	enum.Value{Ordinal: 4, Name: "ProcessData", Description: "Processes data only without building aggregations or indexes."},
	enum.Value{Ordinal: 5, Name: "ProcessAdd", Description: "Adds new data to a partition or new members to a dimension."},
	enum.Value{Ordinal: 6, Name: "ProcessClear", Description: "Drops the data in the object and any lower-level constituent objects."},
	enum.Value{Ordinal: 7, Name: "ProcessStructure", Description: "Processes the structure of a mining structure or cube."},
	enum.Value{Ordinal: 8, Name: "ProcessClearStructureOnly", Description: "Removes all training data from a mining structure."},
	enum.Value{Ordinal: 9, Name: "ProcessScriptCache", Description: "Rebuilds the cached calculations of the MDX script."},
	enum.Value{Ordinal: 10, Name: "ProcessRecalc", Description: "Recalculates calculated columns and hierarchies."},
	enum.Value{Ordinal: 11, Name: "ProcessDefrag", Description: "Defragments the dimension tables."},
)

// Scopes are the values of Create/Scope and Alter/Scope.
var Scopes = enum.NewSet("Scope",
	enum.Value{Ordinal: 0, Name: "Session", Description: "The object exists only for the duration of the session."},
)

// ObjectExpansions are the values of Alter/ObjectExpansion.
var ObjectExpansions = enum.NewSet("ObjectExpansion",
	enum.Value{Ordinal: 0, Name: "ObjectProperties", Description: "Only the properties of the object are altered."},
	enum.Value{Ordinal: 1, Name: "ExpandFull", Description: "The object and all of its descendants are altered."},
)

// ReadWriteModes are the values of Restore/ReadWriteMode.
var ReadWriteModes = enum.NewSet("ReadWriteMode",
	enum.Value{Ordinal: 0, Name: "readWrite", Description: "The database is restored read-write."},
	enum.Value{Ordinal: 1, Name: "readOnly", Description: "The database is restored read-only."},
	enum.Value{Ordinal: 2, Name: "readOnlyExclusive", Description: "The database is restored read-only with exclusive access."},
)

// BackupSecurities are the values of Backup/Security and Restore/Security.
var BackupSecurities = enum.NewSet("Security",
	enum.Value{Ordinal: 0, Name: "SkipMembership", Description: "Security definitions are kept but membership is not."},
	enum.Value{Ordinal: 1, Name: "CopyAll", Description: "Security definitions and membership are kept."},
	enum.Value{Ordinal: 2, Name: "IgnoreSecurity", Description: "Security definitions are ignored."},
)

// SynchronizeSecurities are the values of Synchronize/SynchronizeSecurity.
var SynchronizeSecurities = enum.NewSet("SynchronizeSecurity",
	enum.Value{Ordinal: 0, Name: "SkipMembership", Description: "Security definitions are synchronized without membership."},
	enum.Value{Ordinal: 1, Name: "CopyAll", Description: "Security definitions and membership are synchronized."},
	enum.Value{Ordinal: 2, Name: "IgnoreSecurity", Description: "Security definitions are not synchronized."},
)

// WriteBackTableCreations are the values of Process/WriteBackTableCreation.
var WriteBackTableCreations = enum.NewSet("WriteBackTableCreation",
	enum.Value{Ordinal: 0, Name: "Create", Description: "A new writeback table is created; an existing table is an error."},
	enum.Value{Ordinal: 1, Name: "CreateAlways", Description: "A new writeback table is created, replacing any existing table."},
	enum.Value{Ordinal: 2, Name: "UseExisting", Description: "An existing writeback table is used, or one is created."},
)
