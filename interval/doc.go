/*Package interval implements the genomic-region data model used by the
  region statistics: Region, a half-open [start, end) coordinate range on a
  named chromosome, and region sets grouped by chromosome.

  Sortedness is a type-level property.  NewRegionSet* always returns an
  unsorted *RegionSet; the only way to obtain a *SortedRegionSet is
  RegionSet.Sort().  Code that accepts either form goes through the Set
  interface and checks Set.IsSorted().
*/
package interval
