// Reading mmcif files is interesting because they are so big, while
// the part we want is so small. Tokenising everything would be the
// textbook approach, but two properties of the format let us be
// lazier.
// 1. The first character of a line is decisive. A data item starts
// with "_", a loop starts with loop_, a comment with #.
// 2. The protein data bank promises a restricted style. In the
// atom_site table the columns always arrive in the same order, so
// the layout can be assumed and merely verified.
//
// The reader stops for five things and jumps over everything else:
// the entry id, the title, a pH from crystal growth conditions, the
// nmr sample conditions table (solution structures put their pH
// there) and the atom_site table. The atom table dwarfs the rest of
// the file, so its rows are batched through a channel to a second
// goroutine which parses them and feeds the record builder while the
// scanner keeps reading.
//
// Multi-line values delimited by semicolons are joined with spaces.
// According to
// https://www.iucr.org/resources/cif/spec/version1.1/cifsyntax
// the newlines should be kept, but for a title a single string is
// what we want.
//
// Odds and ends of the format. A question mark means a missing
// value, a dot means deliberately absent. Entities and chains are
// different things. An entity can be anything (protein, ligand,
// solvent), and the mapping back to old pdb chains, per
// http://mmcif.wwpdb.org/docs/pdb_to_pdbx_correspondences.html, is
// the _atom_site.auth_asym_id column.
package mmcif
