package table

// DefaultHeader is the comment placed at the top of a generated table.
var DefaultHeader = []string{
	"/*",
	"    Generated by z80meta from the hand-maintained instruction table and the",
	"    timing database. Edit the hand-maintained table, not this file, and",
	"    regenerate it with \"z80meta generate\".",
	"*/",
}

// AddHeader returns the lines with the header and a blank line in front.
func AddHeader(lines, header []string) []string {
	ret := make([]string, 0, len(header)+1+len(lines))
	ret = append(ret, header...)
	ret = append(ret, "")
	return append(ret, lines...)
}
