package dataset

// CategoryCount is the size of the label space. Every stage of the pipeline
// validates against it: a dataset with any other number of category columns
// is unusable downstream.
const CategoryCount = 36

// Message is one raw record from the messages input file.
type Message struct {
	ID       int64
	Message  string
	Original string
	Genre    string
}

// CategoryRecord is one raw record from the categories input file. Categories
// holds the undecoded ";"-joined "name-digit" tokens.
type CategoryRecord struct {
	ID         int64
	Categories string
}

// Row is a cleaned dataset row: the message fields joined with its decoded
// binary label vector. Labels is ordered by the category names carried in
// the enclosing CleanResult (or storage relation).
type Row struct {
	ID       int64
	Message  string
	Original string
	Genre    string
	Labels   []int
}

// CleanStats records what the merge/clean pass did. Join drops are expected
// with imperfect upstream data and are reported here instead of failing.
type CleanStats struct {
	MessagesIn          int
	CategoriesIn        int
	Joined              int
	UnmatchedMessages   int
	UnmatchedCategories int
	DuplicatesRemoved   int
	RelatedRemapped     int
}

// CleanResult is the output of Clean: the deduplicated rows, the category
// name order the label vectors follow, and the pass statistics.
type CleanResult struct {
	Rows       []Row
	Categories []string
	Stats      CleanStats
}
