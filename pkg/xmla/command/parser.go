package command

import (
	"github.com/beevik/etree"
	"github.com/getmockd/xmlad/pkg/xmla/fault"
	"github.com/getmockd/xmlad/pkg/xmla/xmlutil"
)

type parseFunc func(el *etree.Element) (Command, error)

// parsers dispatches on the local name of the command element.
var parsers = map[string]parseFunc{
	string(KindStatement):           parseStatement,
	string(KindCancel):              parseCancel,
	string(KindClearCache):          parseClearCache,
	string(KindCreate):              parseCreate,
	string(KindAlter):               parseAlter,
	string(KindDelete):              parseDelete,
	string(KindDrop):                parseDrop,
	string(KindProcess):             parseProcess,
	string(KindInsert):              parseInsert,
	string(KindUpdate):              parseUpdate,
	string(KindMergePartitions):     parseMergePartitions,
	string(KindBackup):              parseBackup,
	string(KindRestore):             parseRestore,
	string(KindSynchronize):         parseSynchronize,
	string(KindImageLoad):           parseImageLoad,
	string(KindImageSave):           parseImageSave,
	string(KindLock):                parseLock,
	string(KindUnlock):              parseUnlock,
	string(KindSetAuthContext):      parseSetAuthContext,
	string(KindSubscribe):           parseSubscribe,
	string(KindUnsubscribe):         parseUnsubscribe,
	string(KindDBCC):                parseDBCC,
	string(KindBeginTransaction):    func(*etree.Element) (Command, error) { return &BeginTransaction{}, nil },
	string(KindCommitTransaction):   func(*etree.Element) (Command, error) { return &CommitTransaction{}, nil },
	string(KindRollbackTransaction): func(*etree.Element) (Command, error) { return &RollbackTransaction{}, nil },
}

// Kinds returns the element names Parse recognizes.
func Kinds() []Kind {
	out := make([]Kind, 0, len(parsers))
	for k := range parsers {
		out = append(out, Kind(k))
	}
	return out
}

// Parse turns the children of an Execute/Command element into a typed command.
//
// The first element selects the variant by local name. An empty list is a
// client fault; an unrecognized name returns (nil, nil) so the caller decides
// whether that is fatal. Malformed content of a recognized command is
// returned as a *fault.Fault wrapping a MissingElementError or
// InvalidValueError.
func Parse(children []*etree.Element) (Command, error) {
	el := xmlutil.FirstElement(children)
	if el == nil {
		return nil, fault.New(fault.BadCommand, ErrNoCommand)
	}
	parse, ok := parsers[el.Tag]
	if !ok {
		return nil, nil
	}
	cmd, err := parse(el)
	if err != nil {
		return nil, fault.Wrap(err, fault.BadCommand)
	}
	return cmd, nil
}

func parseStatement(el *etree.Element) (Command, error) {
	return &Statement{Text: xmlutil.Text(el)}, nil
}

func parseCancel(el *etree.Element) (Command, error) {
	f := newFields(el)
	c := &Cancel{
		ConnectionID:     f.integer("ConnectionID"),
		SessionID:        f.str("SessionID"),
		SPID:             f.integer("SPID"),
		CancelAssociated: f.boolean("CancelAssociated"),
	}
	return c, f.err
}

func parseClearCache(el *etree.Element) (Command, error) {
	f := newFields(el)
	return &ClearCache{Object: f.objectReference("Object")}, nil
}

func parseCreate(el *etree.Element) (Command, error) {
	f := newFields(el)
	c := &Create{
		ParentObject:   f.objectReference("ParentObject"),
		Scope:          f.enumValue(Scopes, "Scope"),
		AllowOverwrite: f.boolean("AllowOverwrite"),
	}
	def := f.requiredChild("ObjectDefinition")
	if f.err != nil {
		return nil, f.err
	}
	od, err := parseObjectDefinition(def)
	if err != nil {
		return nil, err
	}
	c.ObjectDefinition = od
	return c, nil
}

func parseAlter(el *etree.Element) (Command, error) {
	f := newFields(el)
	c := &Alter{
		Object:          f.requiredObjectReference("Object"),
		Scope:           f.enumValue(Scopes, "Scope"),
		AllowCreate:     f.boolean("AllowCreate"),
		ObjectExpansion: f.enumValue(ObjectExpansions, "ObjectExpansion"),
	}
	def := f.requiredChild("ObjectDefinition")
	if f.err != nil {
		return nil, f.err
	}
	od, err := parseObjectDefinition(def)
	if err != nil {
		return nil, err
	}
	c.ObjectDefinition = od
	return c, nil
}

func parseDelete(el *etree.Element) (Command, error) {
	f := newFields(el)
	c := &Delete{Object: f.requiredObjectReference("Object")}
	if f.err != nil {
		return nil, f.err
	}
	w, err := parseWhere(f.child("Where"))
	if err != nil {
		return nil, err
	}
	c.Where = w
	return c, nil
}

func parseDrop(el *etree.Element) (Command, error) {
	f := newFields(el)
	c := &Drop{
		Object:                f.requiredObjectReference("Object"),
		DeleteWithDescendants: f.boolean("DeleteWithDescendants"),
	}
	if f.err != nil {
		return nil, f.err
	}
	w, err := parseWhere(f.child("Where"))
	if err != nil {
		return nil, err
	}
	c.Where = w
	return c, nil
}

func parseProcess(el *etree.Element) (Command, error) {
	f := newFields(el)
	c := &Process{
		Object:                 f.requiredObjectReference("Object"),
		Type:                   f.enumValue(ProcessTypes, "Type"),
		WriteBackTableCreation: f.enumValue(WriteBackTableCreations, "WriteBackTableCreation"),
	}
	if dsv := f.child("DataSourceView"); dsv != nil {
		raw := xmlutil.InnerXML(dsv)
		c.DataSourceView = &raw
	}
	if f.err != nil {
		return nil, f.err
	}
	ds, err := parseDataSource(f.child("DataSource"))
	if err != nil {
		return nil, err
	}
	c.DataSource = ds
	ec, err := parseErrorConfiguration(f.child("ErrorConfiguration"))
	if err != nil {
		return nil, err
	}
	c.ErrorConfiguration = ec
	return c, nil
}

func parseInsert(el *etree.Element) (Command, error) {
	f := newFields(el)
	c := &Insert{Object: f.requiredObjectReference("Object")}
	if f.err != nil {
		return nil, f.err
	}
	attrs, err := parseAttributes(f.child("Attributes"))
	if err != nil {
		return nil, err
	}
	c.Attributes = attrs
	return c, nil
}

func parseUpdate(el *etree.Element) (Command, error) {
	f := newFields(el)
	c := &Update{
		Object:              f.requiredObjectReference("Object"),
		MoveWithDescendants: f.boolean("MoveWithDescendants"),
	}
	if f.err != nil {
		return nil, f.err
	}
	attrs, err := parseAttributes(f.child("Attributes"))
	if err != nil {
		return nil, err
	}
	c.Attributes = attrs
	w, err := parseWhere(f.child("Where"))
	if err != nil {
		return nil, err
	}
	c.Where = w
	return c, nil
}

func parseMergePartitions(el *etree.Element) (Command, error) {
	f := newFields(el)
	c := &MergePartitions{Target: f.requiredObjectReference("Target")}
	for _, src := range f.list("Sources", "Source") {
		c.Sources = append(c.Sources, ParseObjectReference(src.ChildElements()))
	}
	return c, f.err
}

func parseBackup(el *etree.Element) (Command, error) {
	f := newFields(el)
	c := &Backup{
		Object:                 f.requiredObjectReference("Object"),
		File:                   f.requiredStr("File"),
		Security:               f.enumValue(BackupSecurities, "Security"),
		ApplyCompression:       f.boolean("ApplyCompression"),
		AllowOverwrite:         f.boolean("AllowOverwrite"),
		Password:               f.str("Password"),
		BackupRemotePartitions: f.boolean("BackupRemotePartitions"),
		Locations:              parseLocations(f.child("Locations")),
	}
	return c, f.err
}

func parseRestore(el *etree.Element) (Command, error) {
	f := newFields(el)
	c := &Restore{
		File:              f.requiredStr("File"),
		DatabaseName:      f.str("DatabaseName"),
		DatabaseID:        f.str("DatabaseID"),
		AllowOverwrite:    f.boolean("AllowOverwrite"),
		Password:          f.str("Password"),
		DbStorageLocation: f.str("DbStorageLocation"),
		ReadWriteMode:     f.enumValue(ReadWriteModes, "ReadWriteMode"),
		Security:          f.enumValue(BackupSecurities, "Security"),
		Locations:         parseLocations(f.child("Locations")),
	}
	return c, f.err
}

func parseSynchronize(el *etree.Element) (Command, error) {
	f := newFields(el)
	c := &Synchronize{
		SynchronizeSecurity: f.enumValue(SynchronizeSecurities, "SynchronizeSecurity"),
		ApplyCompression:    f.boolean("ApplyCompression"),
		Locations:           parseLocations(f.child("Locations")),
	}
	if src := f.requiredChild("Source"); src != nil {
		sf := newFields(src)
		c.Source = SynchronizeSource{
			ConnectionString: sf.str("ConnectionString"),
			Object:           sf.objectReference("Object"),
		}
	}
	return c, f.err
}

func parseImageLoad(el *etree.Element) (Command, error) {
	f := newFields(el)
	return &ImageLoad{
		ImagePath:      f.str("ImagePath"),
		ImageURL:       f.str("ImageUrl"),
		ImageUniqueID:  f.str("ImageUniqueID"),
		ImageVersionID: f.str("ImageVersionID"),
		Password:       f.str("Password"),
		DatabaseName:   f.str("DatabaseName"),
		DatabaseID:     f.str("DatabaseID"),
		Data:           f.str("Data"),
	}, nil
}

func parseImageSave(el *etree.Element) (Command, error) {
	f := newFields(el)
	c := &ImageSave{
		Object:           f.objectReference("Object"),
		Path:             f.str("Path"),
		ImageURL:         f.str("ImageUrl"),
		ImageUniqueID:    f.str("ImageUniqueID"),
		ImageVersionID:   f.str("ImageVersionID"),
		Password:         f.str("Password"),
		CreateNewVersion: f.boolean("CreateNewVersion"),
	}
	return c, f.err
}

func parseLock(el *etree.Element) (Command, error) {
	f := newFields(el)
	c := &Lock{
		ID:     f.requiredStr("ID"),
		Object: f.objectReference("Object"),
	}
	if s, ok := f.text("Mode"); ok {
		m, err := ParseLockMode(s)
		if err != nil {
			f.fail(&InvalidValueError{Element: "Mode", Value: s, Err: err})
		} else {
			c.Mode = &m
		}
	}
	return c, f.err
}

func parseUnlock(el *etree.Element) (Command, error) {
	f := newFields(el)
	c := &Unlock{ID: f.requiredStr("ID")}
	return c, f.err
}

func parseSetAuthContext(el *etree.Element) (Command, error) {
	f := newFields(el)
	return &SetAuthContext{Token: f.str("Token")}, nil
}

func parseSubscribe(el *etree.Element) (Command, error) {
	f := newFields(el)
	return &Subscribe{Object: f.objectReference("Object")}, nil
}

func parseUnsubscribe(el *etree.Element) (Command, error) {
	f := newFields(el)
	return &Unsubscribe{Object: f.objectReference("Object")}, nil
}

func parseDBCC(el *etree.Element) (Command, error) {
	f := newFields(el)
	return &DBCC{Object: f.objectReference("Object")}, nil
}
